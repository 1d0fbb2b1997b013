package interview

import "errors"

// Decision is the terminal outcome of a session. The empty value means the
// session is still undecided.
type Decision string

const (
	DecisionUndecided Decision = ""
	DecisionPass      Decision = "PASS"
	DecisionFail      Decision = "FAIL"
)

// RawAnswer is the unevaluated input for the current question: a transcript
// plus auxiliary speech metrics collected alongside it.
type RawAnswer struct {
	Transcript   string         `json:"transcript"`
	AudioMetrics map[string]any `json:"audio_metrics"`
}

// AnswerEvaluation is one scored answer. Immutable once created; appended to
// the session in question order.
type AnswerEvaluation struct {
	Question           string `json:"question"`
	Transcript         string `json:"transcript"`
	ContentScore       int    `json:"content_score"`
	CommunicationScore int    `json:"communication_score"`
	ConfidenceScore    int    `json:"confidence_score"`
	CheatingFlag       bool   `json:"cheating_flag"`
	Comments           string `json:"comments"`
}

// Session holds the full state of one candidate's interview.
//
// Invariants kept by the transition functions in this package:
//   - 0 <= CurrentIndex <= len(Questions)
//   - len(Answers) == CurrentIndex
//   - FinalDecision moves from undecided to a terminal value exactly once,
//     only after the question list is exhausted.
type Session struct {
	JobSummary       map[string]any `json:"job_summary"`
	CandidateSummary map[string]any `json:"candidate_summary"`

	Questions    []string           `json:"questions"`
	CurrentIndex int                `json:"current_index"`
	Answers      []AnswerEvaluation `json:"answers"`

	// LastEvaluation is the most recent evaluation, kept so callers can
	// report it without re-reading the answer list.
	LastEvaluation *AnswerEvaluation `json:"last_evaluation,omitempty"`

	FinalDecision     Decision `json:"final_decision"`
	ScheduleInterview bool     `json:"schedule_interview"`
}

// NewSession creates an empty session around the two immutable upstream
// summaries. Everything else starts at its zero value.
func NewSession(jobSummary, candidateSummary map[string]any) (Session, error) {
	if jobSummary == nil {
		return Session{}, errors.New("job summary is required")
	}
	if candidateSummary == nil {
		return Session{}, errors.New("candidate summary is required")
	}

	return Session{
		JobSummary:       jobSummary,
		CandidateSummary: candidateSummary,
	}, nil
}

// Exhausted reports whether every question has been answered.
func (s Session) Exhausted() bool {
	return s.CurrentIndex >= len(s.Questions)
}

// TotalQuestions returns the number of generated questions.
func (s Session) TotalQuestions() int {
	return len(s.Questions)
}
