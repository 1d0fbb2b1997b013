// Package screening is the upstream half of the hiring pipeline: analyzing a
// job description into a structured summary and screening resume text against
// it. Both steps are stateless capability calls; their outputs feed the
// interview controller as opaque summaries.
package screening

import (
	"context"
	"fmt"
	"strings"

	"github.com/hireflow/interviewd/internal/ai"
	"go.uber.org/zap"
)

type Service struct {
	analyzer ai.JobAnalyzer
	screener ai.ResumeScreener
	logger   *zap.Logger
}

func NewService(analyzer ai.JobAnalyzer, screener ai.ResumeScreener, logger *zap.Logger) *Service {
	return &Service{
		analyzer: analyzer,
		screener: screener,
		logger:   logger,
	}
}

// AnalyzeJob extracts role, skills, experience level and responsibilities
// from a raw job description.
func (s *Service) AnalyzeJob(ctx context.Context, description string) (map[string]any, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("job description is required")
	}

	summary, err := s.analyzer.AnalyzeJob(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("analyze job description: %w", err)
	}

	s.logger.Info("job description analyzed", zap.Int("fields", len(summary)))

	return summary, nil
}

// ScreenResume matches resume text against an analyzed job description and
// returns the match result used as the candidate summary downstream.
func (s *Service) ScreenResume(ctx context.Context, jobSummary map[string]any, resumeText string) (*ai.ScreeningResult, error) {
	if jobSummary == nil {
		return nil, fmt.Errorf("job summary is required")
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("resume text is required")
	}

	result, err := s.screener.ScreenResume(ctx, jobSummary, resumeText)
	if err != nil {
		return nil, fmt.Errorf("screen resume: %w", err)
	}

	s.logger.Info("resume screened",
		zap.Int("match_score", result.MatchScore),
		zap.String("decision", result.Decision),
	)

	return result, nil
}
