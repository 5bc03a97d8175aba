package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"docmind-backend/internal/admin"
	googleauth "docmind-backend/internal/auth"
	"docmind-backend/internal/documents"
	"docmind-backend/internal/embedding"
	"docmind-backend/internal/insights"
	"docmind-backend/internal/llm"
	"docmind-backend/internal/llm/gemini"
	"docmind-backend/internal/search"
	"docmind-backend/internal/shared/config"
	"docmind-backend/internal/shared/server"
	"docmind-backend/internal/shared/storage/db"
	"docmind-backend/internal/shared/telemetry"
)

// App holds shared dependencies wired from configuration.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	DocumentsRepo    documents.Repo
	Embedder         *embedding.Provider
	LLM              llm.Client
	DocumentsService *documents.Service
	InsightsService  *insights.Service
	SearchEngine     *search.Engine
	DocumentSearcher *search.DocumentSearcher

	DocumentsHandler *documents.Handler
	InsightsHandler  *insights.Handler
	SearchHandler    *search.Handler
	AdminHandler     *admin.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		DocumentsHandler: app.DocumentsHandler,
		InsightsHandler:  app.InsightsHandler,
		SearchHandler:    app.SearchHandler,
		AdminHandler:     app.AdminHandler,
		GoogleAuth:       app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{
				"reason": "DATABASE_URL empty",
			})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "database connect failed",
				"error":  err.Error(),
			})
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

func buildServices(app *App) {
	var docRepo documents.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.GeminiAPIKey != "" {
		if client, err := gemini.NewClient(app.Config.GeminiAPIKey, app.Config.GeminiModel); err == nil {
			llmClient = client
		} else {
			telemetry.Warn("bootstrap.llm_placeholder", map[string]any{"error": err.Error()})
		}
	} else {
		telemetry.Info("bootstrap.llm_placeholder", map[string]any{"reason": "GEMINI_API_KEY empty"})
	}

	embedder := embedding.NewProvider(llmClient)

	docSvc := &documents.Service{
		Repo:             docRepo,
		Embedder:         embedder,
		MaxContentLength: app.Config.MaxContentLength,
	}
	insightsSvc := &insights.Service{Repo: docRepo, LLM: llmClient}
	engine := &search.Engine{Repo: docRepo, Embedder: embedder}
	searcher := &search.DocumentSearcher{LLM: llmClient}

	app.DocumentsRepo = docRepo
	app.Embedder = embedder
	app.LLM = llmClient
	app.DocumentsService = docSvc
	app.InsightsService = insightsSvc
	app.SearchEngine = engine
	app.DocumentSearcher = searcher

	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.InsightsHandler = insights.NewHandler(insightsSvc)
	app.SearchHandler = search.NewHandler(engine, searcher, docRepo)
	app.AdminHandler = admin.NewHandler(docSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.Config.AdminEmails,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
