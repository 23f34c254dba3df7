package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/framelight/studio-api/docs"
	"github.com/framelight/studio-api/internal/ai"
	"github.com/framelight/studio-api/internal/auth"
	"github.com/framelight/studio-api/internal/config"
	"github.com/framelight/studio-api/internal/database"
	"github.com/framelight/studio-api/internal/http/handler"
	"github.com/framelight/studio-api/internal/http/middleware"
	"github.com/framelight/studio-api/internal/http/router"
	"github.com/framelight/studio-api/internal/jobs"
	"github.com/framelight/studio-api/internal/logger"
	"github.com/framelight/studio-api/internal/portal"
	"github.com/framelight/studio-api/internal/repository"
	"github.com/framelight/studio-api/internal/service"
	"github.com/framelight/studio-api/internal/storage"
)

// @title Framelight Studio API
// @version 1.0
// @description Operations backend for a video production studio: CRM, proposals, shoots, planning, finance and a client portal

// @contact.name API Support
// @contact.email support@framelight.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "staging-api.framelight.io"
	case "production":
		docs.SwaggerInfo.Host = "api.framelight.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database with retry logic
	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	shootRepo := repository.NewShootRepository(db)
	deliverableRepo := repository.NewDeliverableRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	serviceItemRepo := repository.NewServiceItemRepository(db)
	bundleRepo := repository.NewBundleRepository(db)
	userRepo := repository.NewUserRepository(db)

	// AI generation client; stays inert without an API key
	aiClient := ai.NewClient(&cfg.AI, log)
	generator := ai.NewGenerator(aiClient, log)
	if !generator.IsConfigured() {
		log.Info("AI generation not configured, endpoints will report unavailable")
	}

	// Initialize services
	tokenManager := auth.NewTokenManager(&cfg.Auth)
	authService := service.NewAuthService(userRepo, tokenManager, log)
	customerService := service.NewCustomerService(customerRepo, interactionRepo, proposalRepo, shootRepo, log)
	proposalService := service.NewProposalService(proposalRepo, customerRepo, incomeRepo, log)
	shootService := service.NewShootService(shootRepo, deliverableRepo, customerRepo, fileStorage, log)
	taskService := service.NewTaskService(taskRepo, log)
	financeService := service.NewFinanceService(expenseRepo, incomeRepo, log)
	catalogService := service.NewCatalogService(serviceItemRepo, bundleRepo, log)
	dashboardService := service.NewDashboardService(customerRepo, proposalRepo, shootRepo, taskRepo, expenseRepo, incomeRepo, generator, log)
	portalService := portal.NewService(customerRepo, shootRepo, deliverableRepo, proposalRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, log)
	customerHandler := handler.NewCustomerHandler(customerService, log)
	proposalHandler := handler.NewProposalHandler(proposalService, log)
	shootHandler := handler.NewShootHandler(shootService, cfg.Storage.MaxUploadSizeMB, log)
	taskHandler := handler.NewTaskHandler(taskService, log)
	financeHandler := handler.NewFinanceHandler(financeService, log)
	catalogHandler := handler.NewCatalogHandler(catalogService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	aiHandler := handler.NewAIHandler(generator, log)
	portalHandler := handler.NewPortalHandler(portalService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		customerHandler,
		proposalHandler,
		shootHandler,
		taskHandler,
		financeHandler,
		catalogHandler,
		dashboardHandler,
		aiHandler,
		portalHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.ProposalExpiryEnabled {
		scheduler = jobs.NewScheduler(log)
		expiryJob := jobs.NewProposalExpiryJob(proposalService, log)
		if err := scheduler.AddJob("proposal-expiry", cfg.Jobs.ProposalExpiryCron, expiryJob.Run); err != nil {
			log.Error("Failed to register proposal expiry job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with proposal expiry job",
				zap.String("cron_expr", cfg.Jobs.ProposalExpiryCron),
			)
		}
	} else {
		log.Info("Proposal expiry job disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
