package bootstrap

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmatch-backend/internal/analyses"
	"cvmatch-backend/internal/llm"
	"cvmatch-backend/internal/llm/deepseek"
	"cvmatch-backend/internal/llm/gemini"
	"cvmatch-backend/internal/services/health"
	"cvmatch-backend/internal/shared/config"
	"cvmatch-backend/internal/shared/server"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	LLM             llm.Client
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	HealthService   *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	analysisSvc := &analyses.Service{
		LLM:      llmClient,
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
	}

	app := &App{
		Config:          cfg,
		LLM:             llmClient,
		AnalysesService: analysisSvc,
		AnalysisHandler: analyses.NewHandler(analysisSvc),
		HealthService:   health.NewService(),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		HealthService:   app.HealthService,
	})

	return app, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if strings.TrimSpace(apiKey) == "" && isDevLike(cfg.Env) {
			log.Printf("bootstrap: GEMINI_API_KEY empty; analysis calls will fail as unavailable")
			return llm.Unconfigured{}, nil
		}
		client, err := gemini.NewClient(ctx, apiKey, cfg.LLMModel)
		if err != nil {
			return nil, fmt.Errorf("build gemini client: %w", err)
		}
		return client, nil
	default:
		apiKey := os.Getenv("DEEPSEEK_API_KEY")
		if strings.TrimSpace(apiKey) == "" && isDevLike(cfg.Env) {
			log.Printf("bootstrap: DEEPSEEK_API_KEY empty; analysis calls will fail as unavailable")
			return llm.Unconfigured{}, nil
		}
		client, err := deepseek.NewClient(apiKey, cfg.LLMModel)
		if err != nil {
			return nil, fmt.Errorf("build deepseek client: %w", err)
		}
		return client, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
