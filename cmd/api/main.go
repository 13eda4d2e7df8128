package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"product-api/internal/config"
	"product-api/internal/database"
	"product-api/internal/handler"
	"product-api/internal/metrics"
	"product-api/internal/repository"
	"product-api/internal/router"
	"product-api/internal/seed"
	"product-api/internal/service"
	"product-api/internal/validation"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting product API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.EnsureSchema {
		if err := database.EnsureSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		logger.Info().Msg("database schema ready")
	}

	sessions := database.NewSessionProvider(pool)
	recorder := metrics.NewRecorder()
	validator := validation.New()

	productRepo := repository.NewProductRepository(logger)

	if cfg.Seed.Enabled {
		seedCatalogue(ctx, cfg.Seed, sessions, productRepo, validator, logger)
	}

	productService := service.NewProductService(productRepo, recorder, logger)
	productHandler := handler.NewProductHandler(productService, sessions, validator, logger)

	mux := router.New(productHandler, recorder, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

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
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

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

// seedCatalogue imports the configured catalogue. Failures are logged and
// the server starts regardless.
func seedCatalogue(
	ctx context.Context,
	cfg config.SeedConfig,
	sessions database.SessionProvider,
	repo repository.ProductRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) {
	fileLoader := seed.NewFileLoader(logger)

	var s3Loader seed.Loader
	if cfg.S3Enabled {
		l, err := seed.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	}

	loader := seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3Prefix, cfg.S3Enabled, logger)
	seeder := seed.NewSeeder(loader, cfg.File, sessions, repo, validator, logger)

	inserted, err := seeder.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Int("inserted", inserted).Msg("catalogue seeding failed")
		return
	}
	logger.Info().Int("inserted", inserted).Msg("catalogue seeding finished")
}
