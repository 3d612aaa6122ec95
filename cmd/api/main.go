package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardaloom/internal/auth"
	"cardaloom/internal/billing"
	"cardaloom/internal/config"
	"cardaloom/internal/database"
	"cardaloom/internal/handler"
	"cardaloom/internal/repository"
	"cardaloom/internal/router"
	"cardaloom/internal/service"
	"cardaloom/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cardaloom API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(pool, logger)
	tenantRepo := repository.NewTenantRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	addonRepo := repository.NewAddonRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	imageRepo := repository.NewImageRepository(pool, logger)

	// Initialize supporting components
	tokens := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	gateway := billing.NewStripeGateway(cfg.Billing, logger)

	store, err := storage.NewLocalStore(cfg.Upload.Dir, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	// Initialize services
	tenantService := service.NewTenantService(accountRepo, tenantRepo, tokens, logger)
	catalogService := service.NewCatalogService(categoryRepo, addonRepo, productRepo, imageRepo, logger)
	billingService := service.NewBillingService(tenantRepo, gateway, logger)
	menuService := service.NewMenuService(tenantRepo, categoryRepo, addonRepo, productRepo, imageRepo, logger)
	uploadService := service.NewUploadService(imageRepo, productRepo, store, cfg.Upload.MaxSizeBytes, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(tenantService, logger),
		Tenant:  handler.NewTenantHandler(tenantService, logger),
		Catalog: handler.NewCatalogHandler(tenantService, catalogService, logger),
		Billing: handler.NewBillingHandler(billingService, logger),
		Webhook: handler.NewWebhookHandler(billingService, logger),
		Upload:  handler.NewUploadHandler(tenantService, uploadService, cfg.Upload.MaxSizeBytes, logger),
		Public:  handler.NewPublicHandler(menuService, logger),
	}

	// Initialize router
	mux := router.New(handlers, tokens, cfg.Upload.Dir, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
