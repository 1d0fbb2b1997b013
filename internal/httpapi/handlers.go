package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/hireflow/interviewd/internal/ai"
	"github.com/hireflow/interviewd/internal/interview"
	"github.com/hireflow/interviewd/internal/store"
	"github.com/hireflow/interviewd/internal/transcribe"
)

// InterviewController is the slice of the interview service the handlers use.
type InterviewController interface {
	Start(ctx context.Context, jobSummary, candidateSummary map[string]any) (*interview.StartResult, error)
	SubmitAnswer(ctx context.Context, sessionID string, answer interview.RawAnswer) (*interview.AnswerResult, error)
}

// Pipeline is the upstream screening surface exposed over HTTP.
type Pipeline interface {
	AnalyzeJob(ctx context.Context, description string) (map[string]any, error)
	ScreenResume(ctx context.Context, jobSummary map[string]any, resumeText string) (*ai.ScreeningResult, error)
}

type InterviewHandler struct {
	controller  InterviewController
	transcriber transcribe.Transcriber
}

func NewInterviewHandler(controller InterviewController, transcriber transcribe.Transcriber) *InterviewHandler {
	return &InterviewHandler{controller: controller, transcriber: transcriber}
}

func (h *InterviewHandler) RegisterRoutes(r fiber.Router) {
	grp := r.Group("/interview")
	grp.Post("/start", h.Start)
	grp.Post("/answer", h.SubmitAnswer)
}

type startRequest struct {
	JDOutput     map[string]any `json:"jd_output"`
	ResumeOutput map[string]any `json:"resume_output"`
}

func (h *InterviewHandler) Start(c fiber.Ctx) error {
	var req startRequest
	if err := c.Bind().Body(&req); err != nil {
		return NewAppError(fiber.StatusBadRequest, "invalid request body", err)
	}

	if req.JDOutput == nil || req.ResumeOutput == nil {
		return NewAppError(fiber.StatusBadRequest, "jd_output and resume_output are required", nil)
	}

	result, err := h.controller.Start(c.Context(), req.JDOutput, req.ResumeOutput)
	if err != nil {
		return mapInterviewError(err)
	}

	return Success(c, fiber.StatusOK, MessageOK, result)
}

type answerRequest struct {
	SessionID  string `json:"session_id"`
	Transcript string `json:"transcript"`
	MediaURL   string `json:"media_url"`
}

func (h *InterviewHandler) SubmitAnswer(c fiber.Ctx) error {
	var req answerRequest
	if err := c.Bind().Body(&req); err != nil {
		return NewAppError(fiber.StatusBadRequest, "invalid request body", err)
	}

	if strings.TrimSpace(req.SessionID) == "" {
		return NewAppError(fiber.StatusBadRequest, "session_id is required", nil)
	}

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		if strings.TrimSpace(req.MediaURL) == "" {
			return NewAppError(fiber.StatusBadRequest, "provide either a transcript or a media_url", interview.ErrMissingAnswer)
		}

		var err error
		transcript, err = h.transcriber.Transcribe(c.Context(), req.MediaURL)
		if err != nil {
			return NewAppError(fiber.StatusInternalServerError, "transcription failed", err)
		}
	}

	answer := interview.RawAnswer{
		Transcript:   transcript,
		AudioMetrics: transcribe.DefaultSpeechMetrics(),
	}

	result, err := h.controller.SubmitAnswer(c.Context(), req.SessionID, answer)
	if err != nil {
		return mapInterviewError(err)
	}

	return Success(c, fiber.StatusOK, MessageOK, result)
}

func mapInterviewError(err error) error {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		return NewAppError(fiber.StatusNotFound, "unknown session_id", err)
	case errors.Is(err, interview.ErrMissingAnswer):
		return NewAppError(fiber.StatusBadRequest, "provide either a transcript or a media_url", err)
	case errors.Is(err, store.ErrUnavailable):
		return NewAppError(fiber.StatusServiceUnavailable, MessageServiceUnavailable, err)
	case errors.Is(err, interview.ErrGenerationFailed),
		errors.Is(err, ai.ErrMalformedQuestions),
		errors.Is(err, ai.ErrMalformedEvaluation):
		return NewAppError(fiber.StatusInternalServerError, MessageInternalServerError, err)
	default:
		return NewAppError(fiber.StatusInternalServerError, MessageInternalServerError, err)
	}
}

type PipelineHandler struct {
	pipeline Pipeline
}

func NewPipelineHandler(pipeline Pipeline) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

func (h *PipelineHandler) RegisterRoutes(r fiber.Router) {
	grp := r.Group("/pipeline")
	grp.Post("/analyze-jd", h.AnalyzeJob)
	grp.Post("/screen-resume", h.ScreenResume)
}

type analyzeJobRequest struct {
	JDText string `json:"jd_text"`
}

func (h *PipelineHandler) AnalyzeJob(c fiber.Ctx) error {
	var req analyzeJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return NewAppError(fiber.StatusBadRequest, "invalid request body", err)
	}

	if strings.TrimSpace(req.JDText) == "" {
		return NewAppError(fiber.StatusBadRequest, "jd_text is required", nil)
	}

	summary, err := h.pipeline.AnalyzeJob(c.Context(), req.JDText)
	if err != nil {
		return NewAppError(fiber.StatusInternalServerError, MessageInternalServerError, err)
	}

	return Success(c, fiber.StatusOK, MessageOK, summary)
}

type screenResumeRequest struct {
	JDOutput   map[string]any `json:"jd_output"`
	ResumeText string         `json:"resume_text"`
}

func (h *PipelineHandler) ScreenResume(c fiber.Ctx) error {
	var req screenResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return NewAppError(fiber.StatusBadRequest, "invalid request body", err)
	}

	if req.JDOutput == nil || strings.TrimSpace(req.ResumeText) == "" {
		return NewAppError(fiber.StatusBadRequest, "jd_output and resume_text are required", nil)
	}

	result, err := h.pipeline.ScreenResume(c.Context(), req.JDOutput, req.ResumeText)
	if err != nil {
		return NewAppError(fiber.StatusInternalServerError, MessageInternalServerError, err)
	}

	return Success(c, fiber.StatusOK, MessageOK, result)
}
