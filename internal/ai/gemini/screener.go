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
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

//go:embed job_prompt.md
var jobPromptTemplate string

//go:embed screening_prompt.md
var screeningPromptTemplate string

// Screener implements the upstream pipeline capabilities: job description
// analysis and resume-to-JD screening.
type Screener struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewScreener(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Screener {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Screener{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// AnalyzeJob extracts a structured summary from a raw job description.
func (s *Screener) AnalyzeJob(ctx context.Context, description string) (map[string]any, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("job description must not be empty")
	}

	prompt := strings.ReplaceAll(jobPromptTemplate, "{{JOB_DESCRIPTION}}", description)

	s.logger.Debug("gemini job analysis request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini job analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, s.maxLogLen)),
	)

	var summary map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &summary); err != nil {
		return nil, fmt.Errorf("parse job analysis response: %w", err)
	}

	return summary, nil
}

// ScreenResume matches resume text against an analyzed job description and
// returns the structured screening result.
func (s *Screener) ScreenResume(ctx context.Context, jobSummary map[string]any, resumeText string) (*ai.ScreeningResult, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, fmt.Errorf("resume text must not be empty")
	}

	jobJSON, err := json.MarshalIndent(jobSummary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job summary: %w", err)
	}

	prompt := strings.ReplaceAll(screeningPromptTemplate, "{{JOB_JSON}}", string(jobJSON))
	prompt = strings.ReplaceAll(prompt, "{{RESUME_TEXT}}", resumeText)

	s.logger.Debug("gemini resume screening request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini resume screening response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, s.maxLogLen)),
	)

	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse screening response: %w", err)
	}

	result := &ai.ScreeningResult{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build screening decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode screening response: %w", err)
	}

	return result, nil
}
