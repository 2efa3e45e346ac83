package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/hackett-digital/transform-engine/pkg/auth"
	"github.com/hackett-digital/transform-engine/pkg/config"
	"github.com/hackett-digital/transform-engine/pkg/database"
	"github.com/hackett-digital/transform-engine/pkg/hackett"
	"github.com/hackett-digital/transform-engine/pkg/handlers"
	"github.com/hackett-digital/transform-engine/pkg/llm"
	"github.com/hackett-digital/transform-engine/pkg/logging"
	"github.com/hackett-digital/transform-engine/pkg/middleware"
	"github.com/hackett-digital/transform-engine/pkg/repositories"
	"github.com/hackett-digital/transform-engine/pkg/services"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", cfg.Database.Host),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Migrations run over database/sql; the service itself uses pgx pools.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.String("error", logging.SanitizeError(err)))
	}
	_ = migrationDB.Close()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)),
			zap.String("url", logging.SanitizeConnectionString(cfg.Database.ConnectionString())))
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	catalog, err := hackett.Load()
	if err != nil {
		logger.Fatal("Failed to load asset catalog", zap.Error(err))
	}

	// The text generator is optional: without an API key every analysis
	// serves the deterministic fallback.
	var generator llm.TextGenerator
	if cfg.Anthropic.APIKey != "" {
		client, err := llm.NewClient(&cfg.Anthropic, logger)
		if err != nil {
			logger.Fatal("Failed to create text-generation client", zap.Error(err))
		}
		generator = client
	} else {
		logger.Warn("No text-generation API key configured, analysis endpoints will serve fallbacks")
	}

	var verifier auth.TokenVerifier
	if cfg.Auth.EnableVerification {
		verifier, err = auth.NewJWKSVerifier(cfg.Auth.JWKSURL, cfg.Auth.Issuer, logger)
		if err != nil {
			logger.Fatal("Failed to initialize JWKS verifier", zap.Error(err))
		}
	} else {
		logger.Warn("JWT signature verification is disabled")
		verifier = &auth.UnverifiedVerifier{}
	}
	authService := auth.NewAuthService(verifier, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	companyRepo := repositories.NewCompanyRepository(db)
	insightRepo := repositories.NewInsightRepository(db)
	phaseRepo := repositories.NewPhaseRepository(db)
	chatRepo := repositories.NewChatMessageRepository(db)
	questionnaireRepo := repositories.NewQuestionnaireRepository(db)
	resultRepo := repositories.NewAnalysisResultRepository(db)
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)

	companyService := services.NewCompanyService(companyRepo, insightRepo, phaseRepo, userRepo, logger)
	insightService := services.NewInsightService(insightRepo, companyRepo, logger)
	chatService := services.NewChatService(chatRepo, companyRepo, logger)
	questionnaireService := services.NewQuestionnaireService(questionnaireRepo, companyRepo, logger)
	resultService := services.NewAnalysisResultService(resultRepo, companyRepo, logger)
	sessionService := services.NewSessionService(sessionRepo, redisClient, logger)
	analysisService := services.NewAnalysisService(db, companyRepo, phaseRepo, insightRepo, sessionService, generator, catalog, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewCompanyHandler(companyService, analysisService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewInsightHandler(insightService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewIntelligenceHandler(analysisService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewChatMessageHandler(chatService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewQuestionnaireHandler(questionnaireService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewAnalysisResultHandler(resultService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewHackettIPHandler(catalog, logger).RegisterRoutes(mux, authMiddleware)

	server := &http.Server{
		Addr:              cfg.BindAddr + ":" + cfg.Port,
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting transform-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))

		var serveErr error
		if cfg.TLSCertPath != "" {
			serveErr = server.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			serveErr = server.ListenAndServe()
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("Server failed", zap.Error(serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}
