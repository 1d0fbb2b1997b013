package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/hireflow/interviewd/internal/ai"
	"github.com/hireflow/interviewd/internal/util"
	"go.uber.org/zap"
)

//go:embed evaluation_prompt.md
var evaluationPromptTemplate string

const (
	minScore = 0
	maxScore = 10
)

// Evaluator scores interview answers through a content generator.
type Evaluator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewEvaluator(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Evaluator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Evaluator{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// EvaluateAnswer asks the model to score the transcript against the question
// and parses the strict JSON reply. The reply must carry exactly the five
// scoring fields with every score inside [0, 10].
func (e *Evaluator) EvaluateAnswer(ctx context.Context, question, transcript string, audioMetrics map[string]any) (*ai.AnswerAssessment, error) {
	metricsJSON, err := json.MarshalIndent(audioMetrics, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal audio metrics: %w", err)
	}

	prompt := buildEvaluationPrompt(question, transcript, string(metricsJSON))

	e.logger.Debug("gemini answer evaluation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini answer evaluation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, e.maxLogLen)),
	)

	return parseAssessment(raw)
}

func buildEvaluationPrompt(question, transcript, metricsJSON string) string {
	prompt := strings.ReplaceAll(evaluationPromptTemplate, "{{QUESTION}}", question)
	prompt = strings.ReplaceAll(prompt, "{{TRANSCRIPT}}", transcript)
	prompt = strings.ReplaceAll(prompt, "{{AUDIO_METRICS}}", metricsJSON)
	return prompt
}

func parseAssessment(raw string) (*ai.AnswerAssessment, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedEvaluation, err)
	}

	assessment := &ai.AnswerAssessment{}

	scores := []struct {
		field string
		dst   *int
	}{
		{"content_score", &assessment.ContentScore},
		{"communication_score", &assessment.CommunicationScore},
		{"confidence_score", &assessment.ConfidenceScore},
	}

	for _, s := range scores {
		v, ok := data[s.field]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", ai.ErrMalformedEvaluation, s.field)
		}
		score, ok := coerceScore(v)
		if !ok {
			return nil, fmt.Errorf("%w: field %q is not an integer", ai.ErrMalformedEvaluation, s.field)
		}
		if score < minScore || score > maxScore {
			return nil, fmt.Errorf("%w: field %q out of range [%d, %d]: %d", ai.ErrMalformedEvaluation, s.field, minScore, maxScore, score)
		}
		*s.dst = score
	}

	if _, ok := data["cheating_flag"]; !ok {
		return nil, fmt.Errorf("%w: missing field %q", ai.ErrMalformedEvaluation, "cheating_flag")
	}
	assessment.CheatingFlag = coerceBool(data["cheating_flag"])
	assessment.Comments = coerceString(data["comments"])

	return assessment, nil
}
