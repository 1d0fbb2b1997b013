package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/hireflow/interviewd/internal/ai"
)

type stubQuestioner struct {
	questions []string
	err       error
	calls     int
}

func (q *stubQuestioner) GenerateQuestions(_ context.Context, _, _ map[string]any, _ ai.QuestionPlan) ([]string, error) {
	q.calls++
	if q.err != nil {
		return nil, q.err
	}
	return q.questions, nil
}

type stubEvaluator struct {
	assessment *ai.AnswerAssessment
	err        error
	calls      int
}

func (e *stubEvaluator) EvaluateAnswer(_ context.Context, _, _ string, _ map[string]any) (*ai.AnswerAssessment, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.assessment, nil
}

func newTestSession(t *testing.T) Session {
	t.Helper()

	session, err := NewSession(map[string]any{"job_role": "Go Developer"}, map[string]any{"match_score": 80})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return session
}

func TestGeneratePopulatesQuestions(t *testing.T) {
	questioner := &stubQuestioner{questions: []string{"q1", "q2"}}
	session := newTestSession(t)

	session, err := Generate(context.Background(), questioner, session, ai.QuestionPlan{Technical: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(session.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(session.Questions))
	}

	if session.CurrentIndex != 0 || len(session.Answers) != 0 {
		t.Fatalf("expected fresh cursor and answers, got index %d with %d answers", session.CurrentIndex, len(session.Answers))
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	questioner := &stubQuestioner{questions: []string{"replacement"}}
	session := newTestSession(t)
	session.Questions = []string{"q1", "q2"}
	session.CurrentIndex = 1
	session.Answers = []AnswerEvaluation{{Question: "q1"}}

	out, err := Generate(context.Background(), questioner, session, ai.QuestionPlan{Technical: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if questioner.calls != 0 {
		t.Fatalf("expected no generation call, got %d", questioner.calls)
	}

	if out.CurrentIndex != 1 || len(out.Answers) != 1 || out.Questions[0] != "q1" {
		t.Fatalf("expected session unchanged, got %+v", out)
	}
}

func TestGeneratePropagatesError(t *testing.T) {
	questioner := &stubQuestioner{err: errors.New("model down")}
	session := newTestSession(t)

	out, err := Generate(context.Background(), questioner, session, ai.QuestionPlan{Technical: 1})
	if err == nil {
		t.Fatalf("expected error")
	}

	if len(out.Questions) != 0 {
		t.Fatalf("expected no questions on failure, got %v", out.Questions)
	}
}

func TestEvaluateAdvancesCursor(t *testing.T) {
	evaluator := &stubEvaluator{assessment: &ai.AnswerAssessment{
		ContentScore:       8,
		CommunicationScore: 7,
		ConfidenceScore:    9,
		Comments:           "good",
	}}
	session := newTestSession(t)
	session.Questions = []string{"q1", "q2"}

	session, err := Evaluate(context.Background(), evaluator, session, RawAnswer{Transcript: "an answer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.CurrentIndex != 1 {
		t.Fatalf("expected cursor at 1, got %d", session.CurrentIndex)
	}

	if len(session.Answers) != session.CurrentIndex {
		t.Fatalf("answer count %d does not match cursor %d", len(session.Answers), session.CurrentIndex)
	}

	if session.Answers[0].Question != "q1" || session.Answers[0].ContentScore != 8 {
		t.Fatalf("unexpected evaluation: %+v", session.Answers[0])
	}

	if session.LastEvaluation == nil || session.LastEvaluation.Question != "q1" {
		t.Fatalf("expected last evaluation to be recorded")
	}
}

func TestEvaluateFailureLeavesSessionUnchanged(t *testing.T) {
	evaluator := &stubEvaluator{err: errors.New("model down")}
	session := newTestSession(t)
	session.Questions = []string{"q1", "q2"}
	session.CurrentIndex = 1
	session.Answers = []AnswerEvaluation{{Question: "q1"}}

	out, err := Evaluate(context.Background(), evaluator, session, RawAnswer{Transcript: "an answer"})
	if err == nil {
		t.Fatalf("expected error")
	}

	if out.CurrentIndex != 1 || len(out.Answers) != 1 {
		t.Fatalf("expected session unchanged, got index %d with %d answers", out.CurrentIndex, len(out.Answers))
	}
}

func TestEvaluatePastExhaustionIsNoop(t *testing.T) {
	evaluator := &stubEvaluator{assessment: &ai.AnswerAssessment{ContentScore: 10}}
	session := newTestSession(t)
	session.Questions = []string{"q1"}
	session.CurrentIndex = 1
	session.Answers = []AnswerEvaluation{{Question: "q1"}}

	out, err := Evaluate(context.Background(), evaluator, session, RawAnswer{Transcript: "late answer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if evaluator.calls != 0 {
		t.Fatalf("expected no evaluation call past exhaustion, got %d", evaluator.calls)
	}

	if out.CurrentIndex != 1 || len(out.Answers) != 1 {
		t.Fatalf("expected session unchanged, got index %d with %d answers", out.CurrentIndex, len(out.Answers))
	}
}

func TestEvaluateDoesNotAliasAnswerSlices(t *testing.T) {
	evaluator := &stubEvaluator{assessment: &ai.AnswerAssessment{ContentScore: 5}}
	session := newTestSession(t)
	session.Questions = []string{"q1", "q2"}
	session.Answers = []AnswerEvaluation{}

	before := session
	after, err := Evaluate(context.Background(), evaluator, session, RawAnswer{Transcript: "an answer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(before.Answers) != 0 {
		t.Fatalf("input session mutated: %d answers", len(before.Answers))
	}

	if len(after.Answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(after.Answers))
	}
}

func scoredSession(t *testing.T, answers ...AnswerEvaluation) Session {
	t.Helper()

	session := newTestSession(t)
	session.Questions = make([]string, len(answers))
	session.CurrentIndex = len(answers)
	session.Answers = answers
	return session
}

func TestDecidePassAboveThreshold(t *testing.T) {
	session := scoredSession(t,
		AnswerEvaluation{ContentScore: 8, CommunicationScore: 7, ConfidenceScore: 9},
		AnswerEvaluation{ContentScore: 7, CommunicationScore: 8, ConfidenceScore: 7},
	)

	decision, schedule := Decide(session, DecisionRules{PassThreshold: 7})
	if decision != DecisionPass || !schedule {
		t.Fatalf("expected PASS with scheduling, got %s schedule=%v", decision, schedule)
	}
}

func TestDecidePassAtExactThreshold(t *testing.T) {
	session := scoredSession(t,
		AnswerEvaluation{ContentScore: 7, CommunicationScore: 7, ConfidenceScore: 7},
	)

	decision, schedule := Decide(session, DecisionRules{PassThreshold: 7})
	if decision != DecisionPass || !schedule {
		t.Fatalf("expected PASS at exact threshold, got %s schedule=%v", decision, schedule)
	}
}

func TestDecideFailsWhenOneDimensionBelowThreshold(t *testing.T) {
	session := scoredSession(t,
		AnswerEvaluation{ContentScore: 10, CommunicationScore: 6, ConfidenceScore: 10},
		AnswerEvaluation{ContentScore: 10, CommunicationScore: 7, ConfidenceScore: 10},
	)

	decision, schedule := Decide(session, DecisionRules{PassThreshold: 7})
	if decision != DecisionFail || schedule {
		t.Fatalf("expected FAIL, got %s schedule=%v", decision, schedule)
	}
}

func TestDecideCheatingOverridesPerfectScores(t *testing.T) {
	session := scoredSession(t,
		AnswerEvaluation{ContentScore: 10, CommunicationScore: 10, ConfidenceScore: 10},
		AnswerEvaluation{ContentScore: 10, CommunicationScore: 10, ConfidenceScore: 10, CheatingFlag: true},
	)

	decision, schedule := Decide(session, DecisionRules{PassThreshold: 7})
	if decision != DecisionFail || schedule {
		t.Fatalf("expected cheating to force FAIL, got %s schedule=%v", decision, schedule)
	}
}

func TestDecideEmptyAnswersFails(t *testing.T) {
	session := newTestSession(t)

	decision, schedule := Decide(session, DecisionRules{PassThreshold: 7})
	if decision != DecisionFail || schedule {
		t.Fatalf("expected FAIL on empty answers, got %s schedule=%v", decision, schedule)
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	session := scoredSession(t,
		AnswerEvaluation{ContentScore: 9, CommunicationScore: 8, ConfidenceScore: 8},
	)

	first, firstSchedule := Decide(session, DecisionRules{PassThreshold: 7})
	for i := 0; i < 10; i++ {
		decision, schedule := Decide(session, DecisionRules{PassThreshold: 7})
		if decision != first || schedule != firstSchedule {
			t.Fatalf("decision changed across calls: %s vs %s", first, decision)
		}
	}
}
