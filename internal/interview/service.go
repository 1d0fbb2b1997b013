package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hireflow/interviewd/internal/ai"
	"go.uber.org/zap"
)

// Config carries the tunable business rules of the interview flow.
type Config struct {
	Plan  ai.QuestionPlan
	Rules DecisionRules
}

// DefaultConfig matches the conventional interview shape: five technical and
// two behavioral questions, pass at an average of seven per dimension.
func DefaultConfig() Config {
	return Config{
		Plan:  ai.QuestionPlan{Technical: 5, Behavioral: 2},
		Rules: DecisionRules{PassThreshold: 7},
	}
}

// Service drives interview sessions through generation, iterative answer
// evaluation and the final decision, persisting every transition in the
// session store.
type Service struct {
	store      SessionStore
	questioner ai.Questioner
	evaluator  ai.Evaluator
	cfg        Config
	logger     *zap.Logger
	locks      *sessionLocks
}

func NewService(store SessionStore, questioner ai.Questioner, evaluator ai.Evaluator, cfg Config, logger *zap.Logger) *Service {
	if cfg.Plan.Total() <= 0 {
		cfg.Plan = DefaultConfig().Plan
	}
	if cfg.Rules.PassThreshold <= 0 {
		cfg.Rules = DefaultConfig().Rules
	}

	return &Service{
		store:      store,
		questioner: questioner,
		evaluator:  evaluator,
		cfg:        cfg,
		logger:     logger,
		locks:      newSessionLocks(),
	}
}

// StartResult is the outcome of starting a session.
type StartResult struct {
	SessionID      string `json:"session_id"`
	FirstQuestion  string `json:"first_question"`
	TotalQuestions int    `json:"total_questions"`
}

// AnswerResult is the outcome of one answer submission. While questions
// remain, NextQuestion and LastEvaluation are set; once the list is
// exhausted, Done flips and the terminal fields are populated.
type AnswerResult struct {
	Done           bool `json:"done"`
	CurrentIndex   int  `json:"current_index"`
	TotalQuestions int  `json:"total_questions"`

	NextQuestion   string            `json:"next_question,omitempty"`
	LastEvaluation *AnswerEvaluation `json:"last_evaluation,omitempty"`

	FinalDecision     Decision           `json:"final_decision,omitempty"`
	ScheduleInterview bool               `json:"schedule_interview,omitempty"`
	AllAnswers        []AnswerEvaluation `json:"all_answers,omitempty"`
}

// Start creates a session around the upstream summaries, generates its
// questions and persists it under a fresh identifier. A failed or empty
// generation leaves nothing persisted, so the caller may retry from scratch.
func (s *Service) Start(ctx context.Context, jobSummary, candidateSummary map[string]any) (*StartResult, error) {
	session, err := NewSession(jobSummary, candidateSummary)
	if err != nil {
		return nil, err
	}

	session, err = Generate(ctx, s.questioner, session, s.cfg.Plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	if len(session.Questions) == 0 {
		return nil, ErrGenerationFailed
	}

	id := uuid.NewString()
	if err := s.store.Put(ctx, id, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.logger.Info("interview session started",
		zap.String("session_id", id),
		zap.Int("total_questions", session.TotalQuestions()),
	)

	return &StartResult{
		SessionID:      id,
		FirstQuestion:  session.Questions[0],
		TotalQuestions: session.TotalQuestions(),
	}, nil
}

// SubmitAnswer evaluates the raw answer against the session's current
// question. Exactly one question is consumed per successful call; operations
// on the same session are serialized by a per-session lock so the whole
// read-evaluate-write is atomic from the caller's perspective.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID string, answer RawAnswer) (*AnswerResult, error) {
	if strings.TrimSpace(answer.Transcript) == "" {
		return nil, ErrMissingAnswer
	}

	unlock := s.locks.acquire(sessionID)
	defer unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session, err = Evaluate(ctx, s.evaluator, session, answer)
	if err != nil {
		// The cursor has not advanced: the same answer can be resubmitted.
		return nil, err
	}

	result := &AnswerResult{
		CurrentIndex:   session.CurrentIndex,
		TotalQuestions: session.TotalQuestions(),
		LastEvaluation: session.LastEvaluation,
	}

	if !session.Exhausted() {
		result.NextQuestion = session.Questions[session.CurrentIndex]

		if err := s.store.Put(ctx, sessionID, session); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}

		s.logger.Debug("answer evaluated",
			zap.String("session_id", sessionID),
			zap.Int("current_index", session.CurrentIndex),
			zap.Int("total_questions", session.TotalQuestions()),
		)

		return result, nil
	}

	if session.FinalDecision == DecisionUndecided {
		decision, schedule := Decide(session, s.cfg.Rules)
		session.FinalDecision = decision
		session.ScheduleInterview = schedule
	}

	if err := s.store.Put(ctx, sessionID, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	result.Done = true
	result.FinalDecision = session.FinalDecision
	result.ScheduleInterview = session.ScheduleInterview
	result.AllAnswers = session.Answers

	s.logger.Info("interview session decided",
		zap.String("session_id", sessionID),
		zap.String("final_decision", string(session.FinalDecision)),
		zap.Bool("schedule_interview", session.ScheduleInterview),
	)

	return result, nil
}
