package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reyan-luxe/internal/config"
	"reyan-luxe/internal/database"
	"reyan-luxe/internal/handler"
	"reyan-luxe/internal/notifier"
	"reyan-luxe/internal/payment"
	"reyan-luxe/internal/repository"
	"reyan-luxe/internal/router"
	"reyan-luxe/internal/service"
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
	logger.Info().Msg("starting reyan-luxe API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize payment gateway client
	gateway := payment.NewRazorpayClient(payment.RazorpayConfig{
		KeyID:         cfg.Razorpay.KeyID,
		KeySecret:     cfg.Razorpay.KeySecret,
		WebhookSecret: cfg.Razorpay.WebhookSecret,
		BaseURL:       cfg.Razorpay.BaseURL,
	}, logger)

	if cfg.Razorpay.WebhookSecret == "" {
		logger.Warn().Msg("RAZORPAY_WEBHOOK_SECRET not set: webhook signatures will not be verified")
	}

	// Initialize notifier with AWS backend when email is enabled
	var notify notifier.Notifier
	if cfg.Email.Enabled {
		notify, err = notifier.NewAWSNotifier(ctx, notifier.Config{
			Region:     cfg.Email.Region,
			FromEmail:  cfg.Email.FromEmail,
			AdminEmail: cfg.Email.AdminEmail,
			SMSEnabled: cfg.SMS.Enabled,
		}, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise AWS notifier, notifications disabled")
			notify = notifier.Nop{}
		}
	} else {
		notify = notifier.Nop{}
		logger.Info().Msg("email notifications disabled")
	}

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, notify, logger)
	paymentService := service.NewPaymentService(orderRepo, gateway, notify, logger)
	cartService := service.NewCartService(cartRepo, wishlistRepo, productRepo, logger)
	accountService := service.NewAccountService(userRepo, notify, logger)

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	accountHandler := handler.NewAccountHandler(accountService, logger)

	// Initialize router
	mux := router.New(catalogHandler, orderHandler, paymentHandler, cartHandler, accountHandler, userRepo, logger)

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
