package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MithunChowdary/resume-roaster/internal/analyses"
	"github.com/MithunChowdary/resume-roaster/internal/extract"
	"github.com/MithunChowdary/resume-roaster/internal/llm/groq"
	"github.com/MithunChowdary/resume-roaster/internal/shared/config"
	"github.com/MithunChowdary/resume-roaster/internal/shared/server"
	"github.com/MithunChowdary/resume-roaster/internal/shared/storage/db"
)

// App holds shared dependencies with an explicit lifecycle: Build connects
// and wires everything, Close releases the database pool.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Repo            analyses.Repo
	AnalysisService *analyses.Service
	AnalysisHandler *analyses.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo analyses.Repo
	if sqlDB != nil {
		repo = &analyses.PGRepo{DB: sqlDB}
	} else {
		repo = analyses.NewMemoryRepo()
	}

	llmClient, err := groq.NewClient(cfg.GroqAPIKey, cfg.GroqAPIBase, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		return nil, err
	}

	svc := &analyses.Service{
		Repo:           repo,
		LLM:            llmClient,
		Extract:        extract.FromBytes,
		ExtractTimeout: cfg.ExtractTimeout,
		LLMTimeout:     cfg.LLMTimeout,
	}
	handler := analyses.NewHandler(svc)

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		Repo:            repo,
		AnalysisService: svc,
		AnalysisHandler: handler,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: handler,
	})
	return app, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
