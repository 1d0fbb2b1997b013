package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hireflow/interviewd/internal/ai"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestQuestionerGeneratesQuestions(t *testing.T) {
	stub := &stubGenerator{response: "What is a goroutine?\nExplain channels.\nTell me about a conflict you resolved."}
	questioner := NewQuestioner(stub, zap.NewNop(), 0)

	job := map[string]any{"job_role": "Go Developer"}
	candidate := map[string]any{"match_score": 85}

	questions, err := questioner.GenerateQuestions(context.Background(), job, candidate, ai.QuestionPlan{Technical: 2, Behavioral: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}

	if questions[0] != "What is a goroutine?" {
		t.Fatalf("unexpected first question: %q", questions[0])
	}

	if stub.lastPrompt == "" {
		t.Fatalf("expected prompt to be sent")
	}

	if !strings.Contains(stub.lastPrompt, "2 technical") {
		t.Fatalf("expected technical count in prompt: %s", stub.lastPrompt)
	}

	if !strings.Contains(stub.lastPrompt, "Go Developer") {
		t.Fatalf("expected job summary in prompt: %s", stub.lastPrompt)
	}
}

func TestQuestionerStripsBulletsAndBlanks(t *testing.T) {
	stub := &stubGenerator{response: "\n- What is a mutex?\n\n* Explain context cancellation.\n1. Describe your last project.\n2) Why Go?\n   \n"}
	questioner := NewQuestioner(stub, zap.NewNop(), 0)

	questions, err := questioner.GenerateQuestions(context.Background(), map[string]any{}, map[string]any{}, ai.QuestionPlan{Technical: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"What is a mutex?",
		"Explain context cancellation.",
		"Describe your last project.",
		"Why Go?",
	}

	if len(questions) != len(expected) {
		t.Fatalf("expected %d questions, got %d: %v", len(expected), len(questions), questions)
	}

	for i, want := range expected {
		if questions[i] != want {
			t.Fatalf("question %d: expected %q, got %q", i, want, questions[i])
		}
	}
}

func TestQuestionerRejectsEmptyOutput(t *testing.T) {
	stub := &stubGenerator{response: "\n   \n\n"}
	questioner := NewQuestioner(stub, zap.NewNop(), 0)

	_, err := questioner.GenerateQuestions(context.Background(), map[string]any{}, map[string]any{}, ai.QuestionPlan{Technical: 5, Behavioral: 2})
	if !errors.Is(err, ai.ErrMalformedQuestions) {
		t.Fatalf("expected ErrMalformedQuestions, got %v", err)
	}
}

func TestQuestionerPropagatesGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("boom")}
	questioner := NewQuestioner(stub, zap.NewNop(), 0)

	_, err := questioner.GenerateQuestions(context.Background(), map[string]any{}, map[string]any{}, ai.QuestionPlan{Technical: 1})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestQuestionerRejectsEmptyPlan(t *testing.T) {
	questioner := NewQuestioner(&stubGenerator{}, zap.NewNop(), 0)

	_, err := questioner.GenerateQuestions(context.Background(), map[string]any{}, map[string]any{}, ai.QuestionPlan{})
	if err == nil {
		t.Fatalf("expected error for empty plan")
	}
}
