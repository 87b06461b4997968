package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/madetect-tw/madetect-engine/pkg/audit"
	"github.com/madetect-tw/madetect-engine/pkg/auth"
	"github.com/madetect-tw/madetect-engine/pkg/config"
	"github.com/madetect-tw/madetect-engine/pkg/database"
	"github.com/madetect-tw/madetect-engine/pkg/handlers"
	"github.com/madetect-tw/madetect-engine/pkg/llm"
	"github.com/madetect-tw/madetect-engine/pkg/logging"
	"github.com/madetect-tw/madetect-engine/pkg/middleware"
	"github.com/madetect-tw/madetect-engine/pkg/repositories"
	"github.com/madetect-tw/madetect-engine/pkg/retry"
	"github.com/madetect-tw/madetect-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("law_doc_path", cfg.LawDocPath))

	ctx := context.Background()

	// Apply migrations before opening the pool
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open database for migrations", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.Connect(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	recordRepo := repositories.NewRecordRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Generation client and retry policy
	client, err := llm.NewClient(ctx, &llm.Config{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		Endpoint: cfg.LLM.Endpoint,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create generation client", zap.Error(err))
	}
	policy := &retry.Policy{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		DefaultDelay: cfg.Retry.DefaultDelay(),
		Buffer:       cfg.Retry.Buffer(),
	}

	// Services
	userService := services.NewUserService(userRepo)
	adminService := services.NewAdminService(adminRepo, userRepo, reportRepo)
	projectService := services.NewProjectService(projectRepo, recordRepo, logger)
	reportService := services.NewReportService(reportRepo, userRepo, logger)
	analysisService := services.NewAnalysisService(client, policy, cfg.LawDocPath, logger)

	// Auth
	tokens := auth.NewService(cfg.JWTSecret)
	auditor := audit.NewSecurityAuditor(logger)
	authMiddleware := auth.NewMiddleware(tokens, auditor, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAuthHandler(userService, adminService, tokens, auditor, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewProjectsHandler(projectService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewDetectHandler(analysisService, projectService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewReportsHandler(reportService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewAdminHandler(adminService, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting madetect-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))

	if cfg.TLSCertPath != "" {
		err = http.ListenAndServeTLS(addr, cfg.TLSCertPath, cfg.TLSKeyPath, handler)
	} else {
		err = http.ListenAndServe(addr, handler)
	}
	if err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a JSON production logger, or a human-readable one for
// local development.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
