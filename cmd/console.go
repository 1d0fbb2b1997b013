package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hireflow/interviewd/internal/ai"
	"github.com/hireflow/interviewd/internal/interview"
	"github.com/hireflow/interviewd/internal/logger"
	"github.com/hireflow/interviewd/internal/screening"
	"github.com/hireflow/interviewd/internal/store"
	"github.com/hireflow/interviewd/internal/transcribe"

	"github.com/hireflow/interviewd/internal/ai/gemini"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the full hiring pipeline interactively: analyze a JD, screen a resume, then answer the interview on stdin",
	Run: func(cmd *cobra.Command, _ []string) {
		console(cmd)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	consoleCmd.Flags().String("jd-file", "", "path to a file with the raw job description text")
	consoleCmd.Flags().String("resume-file", "", "path to a file with the candidate's resume text")

	consoleCmd.MarkFlagRequired("jd-file")
	consoleCmd.MarkFlagRequired("resume-file")
}

// console drives one candidate through the whole pipeline using the local
// terminal as the answer channel. Useful for prompt tuning without an HTTP
// client.
func console(cmd *cobra.Command) {
	ctx := context.Background()

	_ = godotenv.Load()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	jdText, err := readTextFlag(cmd, "jd-file")
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	resumeText, err := readTextFlag(cmd, "resume-file")
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err))
	}

	generator, err := newGeminiGenerator(ctx, config.AI)
	if err != nil {
		logger.Fatal("building the gemini generator", zap.Error(err))
	}

	maxLogLen := 0
	if config.AI != nil && config.AI.Gemini != nil {
		maxLogLen = config.AI.Gemini.MaxLogLength
	}

	screener := gemini.NewScreener(generator, logger, maxLogLen)
	pipeline := screening.NewService(screener, screener, logger)

	jobSummary, err := pipeline.AnalyzeJob(ctx, jdText)
	if err != nil {
		logger.Fatal("analyzing job description", zap.Error(err))
	}

	screened, err := pipeline.ScreenResume(ctx, jobSummary, resumeText)
	if err != nil {
		logger.Fatal("screening resume", zap.Error(err))
	}

	fmt.Printf("Screening: score %d, decision %s\n\n", screened.MatchScore, screened.Decision)

	candidateSummary, err := toMap(screened)
	if err != nil {
		logger.Fatal("encoding screening result", zap.Error(err))
	}

	controller := interview.NewService(
		store.NewMemory(),
		gemini.NewQuestioner(generator, logger, maxLogLen),
		gemini.NewEvaluator(generator, logger, maxLogLen),
		interviewConfig(config.Interview),
		logger,
	)

	started, err := controller.Start(ctx, jobSummary, candidateSummary)
	if err != nil {
		logger.Fatal("starting the interview", zap.Error(err))
	}

	question := started.FirstQuestion
	for num := 1; ; num++ {
		fmt.Printf("Question %d/%d: %s\n", num, started.TotalQuestions, question)

		answerPrompt := promptui.Prompt{Label: "Your answer"}
		answer, err := answerPrompt.Run()
		if err != nil {
			logger.Fatal("reading answer", zap.Error(err))
		}

		result, err := controller.SubmitAnswer(ctx, started.SessionID, interview.RawAnswer{
			Transcript:   answer,
			AudioMetrics: transcribe.DefaultSpeechMetrics(),
		})
		if err != nil {
			logger.Fatal("evaluating answer", zap.Error(err))
		}

		if eval := result.LastEvaluation; eval != nil {
			fmt.Printf("  content %d / communication %d / confidence %d: %s\n\n",
				eval.ContentScore, eval.CommunicationScore, eval.ConfidenceScore, eval.Comments)
		}

		if result.Done {
			fmt.Printf("Final decision: %s (schedule interview: %t)\n", result.FinalDecision, result.ScheduleInterview)
			return
		}

		question = result.NextQuestion
	}
}

func readTextFlag(cmd *cobra.Command, name string) (string, error) {
	path := strings.TrimSpace(cmd.Flag(name).Value.String())
	if path == "" {
		return "", fmt.Errorf("--%s is required", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("file %s is empty", path)
	}

	return text, nil
}

func toMap(result *ai.ScreeningResult) (map[string]any, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}
