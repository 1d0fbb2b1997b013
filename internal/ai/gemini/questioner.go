package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	_ "embed"

	"github.com/hireflow/interviewd/internal/ai"
	"github.com/hireflow/interviewd/internal/util"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed questions_prompt.md
var questionsPromptTemplate string

const defaultMaxLogLength = 200

// Questioner generates interview questions through a content generator.
type Questioner struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewQuestioner(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Questioner {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Questioner{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// GenerateQuestions asks the model for the planned number of questions and
// parses the raw text output into discrete question strings.
func (q *Questioner) GenerateQuestions(ctx context.Context, jobSummary, candidateSummary map[string]any, plan ai.QuestionPlan) ([]string, error) {
	if plan.Total() <= 0 {
		return nil, fmt.Errorf("question plan must request at least one question")
	}

	jobJSON, err := json.MarshalIndent(jobSummary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job summary: %w", err)
	}

	candidateJSON, err := json.MarshalIndent(candidateSummary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidate summary: %w", err)
	}

	prompt := buildQuestionsPrompt(string(jobJSON), string(candidateJSON), plan)

	q.logger.Debug("gemini question generation request",
		zap.Int("technical", plan.Technical),
		zap.Int("behavioral", plan.Behavioral),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, q.maxLogLen)),
	)

	raw, err := q.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	q.logger.Debug("gemini question generation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, q.maxLogLen)),
	)

	questions := parseQuestionLines(raw)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in %q", ai.ErrMalformedQuestions, util.TruncateForLog(raw, q.maxLogLen))
	}

	return questions, nil
}

func buildQuestionsPrompt(jobJSON, candidateJSON string, plan ai.QuestionPlan) string {
	prompt := strings.ReplaceAll(questionsPromptTemplate, "{{TECHNICAL_COUNT}}", strconv.Itoa(plan.Technical))
	prompt = strings.ReplaceAll(prompt, "{{BEHAVIORAL_COUNT}}", strconv.Itoa(plan.Behavioral))
	prompt = strings.ReplaceAll(prompt, "{{JOB_JSON}}", jobJSON)
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE_JSON}}", candidateJSON)
	return prompt
}

// parseQuestionLines splits raw generation output into questions, one per
// line, dropping blank lines and stripping leading bullets and numbering.
func parseQuestionLines(raw string) []string {
	questions := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		question := stripListMarker(line)
		if question == "" {
			continue
		}
		questions = append(questions, question)
	}
	return questions
}

func stripListMarker(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•")

	// Numbered prefixes like "1." or "2)".
	trimmed := strings.TrimLeftFunc(line, unicode.IsDigit)
	if trimmed != line {
		if rest, ok := strings.CutPrefix(trimmed, "."); ok {
			line = rest
		} else if rest, ok := strings.CutPrefix(trimmed, ")"); ok {
			line = rest
		}
	}

	return strings.TrimSpace(line)
}
