package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hireflow/interviewd/internal/ai"
	"github.com/hireflow/interviewd/internal/ai/gemini"
	"github.com/hireflow/interviewd/internal/httpapi"
	"github.com/hireflow/interviewd/internal/interview"
	"github.com/hireflow/interviewd/internal/logger"
	"github.com/hireflow/interviewd/internal/screening"
	"github.com/hireflow/interviewd/internal/secrets"
	"github.com/hireflow/interviewd/internal/store"
	"github.com/hireflow/interviewd/internal/transcribe"
)

const (
	defaultPort            = "8000"
	defaultShutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interviewd HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "", "HTTP port to listen on")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve(_ *cobra.Command) {
	ctx := context.Background()

	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting interviewd", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	generator, err := newGeminiGenerator(ctx, config.AI)
	if err != nil {
		logger.Fatal(
			"building the gemini generator",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE or the ai.gemini section in the configuration file"),
		)
	}

	maxLogLen := 0
	if config.AI != nil && config.AI.Gemini != nil {
		maxLogLen = config.AI.Gemini.MaxLogLength
	}

	sessions, cleanup, err := newSessionStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("building the session store", zap.Error(err))
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Warn("closing the session store", zap.Error(err))
		}
	}()

	controller := interview.NewService(
		sessions,
		gemini.NewQuestioner(generator, logger, maxLogLen),
		gemini.NewEvaluator(generator, logger, maxLogLen),
		interviewConfig(config.Interview),
		logger,
	)

	screener := gemini.NewScreener(generator, logger, maxLogLen)
	pipeline := screening.NewService(screener, screener, logger)

	app := httpapi.New(httpapi.Deps{
		Controller:  controller,
		Pipeline:    pipeline,
		Transcriber: transcribe.NewStub(),
		Logger:      logger,
	})

	port := defaultPort
	if config.Server != nil && strings.TrimSpace(config.Server.Port) != "" {
		port = config.Server.Port
	}

	addr, err := httpapi.ListenAddr(port)
	if err != nil {
		logger.Fatal("invalid HTTP port", zap.Error(err))
	}

	logger.Info("listening", zap.String("addr", addr))

	runUntilSignalled(app, addr, logger)
}

func runUntilSignalled(app *fiber.App, addr string, logger *zap.Logger) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			logger.Warn("shutdown error", zap.Error(err))
		}
	}
}

func newGeminiGenerator(ctx context.Context, cfg *AIConfig) (*gemini.Generator, error) {
	var geminiCfg *GeminiConfig
	if cfg != nil {
		provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
		if provider != "" && provider != "gemini" {
			return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
		}
		geminiCfg = cfg.Gemini
	}
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	keyFile := geminiCfg.APIKeyFile
	if strings.TrimSpace(keyFile) == "" {
		keyFile = viper.GetString("ai.gemini.api-key-file")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		File:  keyFile,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model)
	if err != nil {
		return nil, err
	}

	generator.Timeout = geminiCfg.CapabilityTimeout

	return generator, nil
}

func newSessionStore(ctx context.Context, cfg *StoreConfig, logger *zap.Logger) (interview.SessionStore, func() error, error) {
	backend := "memory"
	if cfg != nil && strings.TrimSpace(cfg.Backend) != "" {
		backend = strings.TrimSpace(strings.ToLower(cfg.Backend))
	}

	switch backend {
	case "memory":
		logger.Info("using in-memory session store")
		return store.NewMemory(), func() error { return nil }, nil
	case "redis":
		if cfg == nil || cfg.Redis == nil || strings.TrimSpace(cfg.Redis.Addr) == "" {
			return nil, nil, fmt.Errorf("store.redis.addr is required for the redis backend")
		}

		redisStore, err := store.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("using redis session store",
			zap.String("addr", cfg.Redis.Addr),
			zap.Duration("ttl", cfg.Redis.TTL),
		)
		return redisStore, redisStore.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session store backend: %s", backend)
	}
}

func interviewConfig(cfg *InterviewConfig) interview.Config {
	out := interview.DefaultConfig()
	if cfg == nil {
		return out
	}

	if cfg.TechnicalQuestions > 0 || cfg.BehavioralQuestions > 0 {
		out.Plan = ai.QuestionPlan{
			Technical:  cfg.TechnicalQuestions,
			Behavioral: cfg.BehavioralQuestions,
		}
	}
	if cfg.PassThreshold > 0 {
		out.Rules.PassThreshold = cfg.PassThreshold
	}

	return out
}
