package interview

import (
	"context"

	"github.com/hireflow/interviewd/internal/ai"
)

// DecisionRules are the configurable gates applied by Decide.
type DecisionRules struct {
	// PassThreshold is the minimum average every score dimension must reach
	// for a PASS. Cheating overrides it unconditionally.
	PassThreshold float64
}

// Generate populates the session's question list through the questioner.
//
// Generation runs at most once per session: when questions are already
// present the session is returned unchanged. On success the cursor, answers
// and decision fields are reset so a stale session starts a clean run.
func Generate(ctx context.Context, questioner ai.Questioner, s Session, plan ai.QuestionPlan) (Session, error) {
	if len(s.Questions) > 0 {
		return s, nil
	}

	questions, err := questioner.GenerateQuestions(ctx, s.JobSummary, s.CandidateSummary, plan)
	if err != nil {
		return s, err
	}

	s.Questions = questions
	s.CurrentIndex = 0
	s.Answers = nil
	s.LastEvaluation = nil
	s.FinalDecision = DecisionUndecided
	s.ScheduleInterview = false

	return s, nil
}

// Evaluate scores the raw answer against the current question and advances
// the cursor by one.
//
// Past exhaustion this is a no-op, guarding against double submission. When
// the evaluator fails the session is returned unchanged so the same answer
// can be resubmitted.
func Evaluate(ctx context.Context, evaluator ai.Evaluator, s Session, answer RawAnswer) (Session, error) {
	if s.Exhausted() {
		return s, nil
	}

	question := s.Questions[s.CurrentIndex]

	assessment, err := evaluator.EvaluateAnswer(ctx, question, answer.Transcript, answer.AudioMetrics)
	if err != nil {
		return s, err
	}

	evaluation := AnswerEvaluation{
		Question:           question,
		Transcript:         answer.Transcript,
		ContentScore:       assessment.ContentScore,
		CommunicationScore: assessment.CommunicationScore,
		ConfidenceScore:    assessment.ConfidenceScore,
		CheatingFlag:       assessment.CheatingFlag,
		Comments:           assessment.Comments,
	}

	answers := make([]AnswerEvaluation, 0, len(s.Answers)+1)
	answers = append(answers, s.Answers...)
	answers = append(answers, evaluation)

	s.Answers = answers
	s.CurrentIndex++
	s.LastEvaluation = &evaluation

	return s, nil
}

// Decide computes the terminal outcome from the answer sequence. It is a pure
// function of the answers: deterministic and free of side effects.
//
// Rules, first match wins:
//  1. any cheating flag  -> FAIL, no scheduling (overrides all scores)
//  2. all three score averages >= PassThreshold -> PASS, schedule
//  3. otherwise -> FAIL, no scheduling
//
// An empty answer list decides FAIL without dividing by zero.
func Decide(s Session, rules DecisionRules) (Decision, bool) {
	if len(s.Answers) == 0 {
		return DecisionFail, false
	}

	var content, communication, confidence float64
	cheating := false

	for _, a := range s.Answers {
		content += float64(a.ContentScore)
		communication += float64(a.CommunicationScore)
		confidence += float64(a.ConfidenceScore)
		cheating = cheating || a.CheatingFlag
	}

	if cheating {
		return DecisionFail, false
	}

	n := float64(len(s.Answers))
	if content/n >= rules.PassThreshold && communication/n >= rules.PassThreshold && confidence/n >= rules.PassThreshold {
		return DecisionPass, true
	}

	return DecisionFail, false
}
