package ai

import (
	"context"
	"errors"
)

// ErrMalformedQuestions is returned when generation output cannot be parsed
// into a non-empty question list.
var ErrMalformedQuestions = errors.New("malformed question generation output")

// ErrMalformedEvaluation is returned when evaluation output is missing fields
// or carries scores outside the allowed range.
var ErrMalformedEvaluation = errors.New("malformed answer evaluation output")

// QuestionPlan describes how many questions of each kind to request.
type QuestionPlan struct {
	Technical  int
	Behavioral int
}

func (p QuestionPlan) Total() int {
	return p.Technical + p.Behavioral
}

// AnswerAssessment is the scored result of a single interview answer.
// All scores are integers in [0, 10].
type AnswerAssessment struct {
	ContentScore       int    `json:"content_score" mapstructure:"content_score"`
	CommunicationScore int    `json:"communication_score" mapstructure:"communication_score"`
	ConfidenceScore    int    `json:"confidence_score" mapstructure:"confidence_score"`
	CheatingFlag       bool   `json:"cheating_flag" mapstructure:"cheating_flag"`
	Comments           string `json:"comments" mapstructure:"comments"`
}

// ScreeningResult is the structured outcome of matching a resume against an
// analyzed job description.
type ScreeningResult struct {
	MatchScore    int      `json:"match_score" mapstructure:"match_score"`
	SkillsMatched []string `json:"skills_matched" mapstructure:"skills_matched"`
	SkillsMissing []string `json:"skills_missing" mapstructure:"skills_missing"`
	Strengths     []string `json:"strengths" mapstructure:"strengths"`
	Weaknesses    []string `json:"weaknesses" mapstructure:"weaknesses"`
	Decision      string   `json:"decision" mapstructure:"decision"`
}

// Questioner generates an ordered list of interview questions from the job
// description summary and the candidate screening summary.
type Questioner interface {
	GenerateQuestions(ctx context.Context, jobSummary, candidateSummary map[string]any, plan QuestionPlan) ([]string, error)
}

// Evaluator scores a single answer transcript against its question, taking
// auxiliary speech metrics into account.
type Evaluator interface {
	EvaluateAnswer(ctx context.Context, question, transcript string, audioMetrics map[string]any) (*AnswerAssessment, error)
}

// JobAnalyzer extracts a structured summary from a raw job description.
type JobAnalyzer interface {
	AnalyzeJob(ctx context.Context, description string) (map[string]any, error)
}

// ResumeScreener matches resume text against an analyzed job description.
type ResumeScreener interface {
	ScreenResume(ctx context.Context, jobSummary map[string]any, resumeText string) (*ScreeningResult, error)
}
