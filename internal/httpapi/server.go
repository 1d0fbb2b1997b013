// Package httpapi exposes the hiring pipeline over HTTP: the upstream
// screening endpoints and the interview session endpoints.
package httpapi

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/hireflow/interviewd/internal/transcribe"
	"go.uber.org/zap"
)

// Deps aggregates everything the HTTP surface needs.
type Deps struct {
	Controller  InterviewController
	Pipeline    Pipeline
	Transcriber transcribe.Transcriber
	Logger      *zap.Logger
}

// New builds the fiber application with all routes and middleware registered.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{})

	app.Use(ErrorMiddleware(deps.Logger))

	app.Get("/", index)
	app.Get("/health", health)

	api := app.Group("/api")

	NewInterviewHandler(deps.Controller, deps.Transcriber).RegisterRoutes(api)

	if deps.Pipeline != nil {
		NewPipelineHandler(deps.Pipeline).RegisterRoutes(api)
	}

	return app
}

func index(c fiber.Ctx) error {
	return Success(c, fiber.StatusOK, MessageOK, fiber.Map{
		"service": "interviewd",
		"endpoints": fiber.Map{
			"analyze_jd":       "/api/pipeline/analyze-jd",
			"screen_resume":    "/api/pipeline/screen-resume",
			"interview_start":  "/api/interview/start",
			"interview_answer": "/api/interview/answer",
		},
	})
}

func health(c fiber.Ctx) error {
	return Success(c, fiber.StatusOK, MessageOK, fiber.Map{"status": "healthy"})
}

// ListenAddr normalizes a configured port into a listen address.
func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
