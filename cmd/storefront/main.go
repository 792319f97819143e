package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizza-storefront/internal/backend"
	"pizza-storefront/internal/cart"
	"pizza-storefront/internal/config"
	"pizza-storefront/internal/database"
	"pizza-storefront/internal/delivery"
	"pizza-storefront/internal/handler"
	"pizza-storefront/internal/router"
	"pizza-storefront/internal/service"
	"pizza-storefront/internal/session"
	"pizza-storefront/internal/storage"

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
	logger.Info().Msg("starting pizza storefront")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Client state: cart, session and order summaries
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStore()

	// Delivery zones with S3 and local fallback
	zones := delivery.LoadOrDefault(ctx, zoneLoader(ctx, cfg, logger), cfg.Delivery.ZonesFile, logger)

	// Backend client
	api := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)

	// Application state
	tokens := session.NewStaffTokens(cfg.Staff.TokenSecret, cfg.Staff.TokenTTL)
	sess := session.New(store, tokens, logger)
	sess.Load(ctx)
	engine := cart.New(store, logger)
	engine.Load(ctx)

	// Initialize services
	catalogService := service.NewCatalogService(api, logger)
	accountService := service.NewAccountService(api, sess, engine, cfg.Staff.PasswordHash, logger)
	checkoutService := service.NewCheckoutService(api, engine, sess, zones, store, logger)
	trackerService := service.NewTrackerService(api, api, sess, engine, store, cfg.Polling.Tracker, logger)
	kitchenService := service.NewKitchenService(api, attentionLogger(logger), logger)

	// Pollers
	go trackerService.Run(ctx)
	sess.Subscribe(func(st session.State) {
		if st.User == nil {
			return
		}
		// Show the new customer's orders without waiting for the next tick.
		go func() {
			if err := trackerService.Refresh(ctx); err != nil {
				logger.Debug().Err(err).Msg("tracker refresh after sign-in failed")
			}
		}()
	})
	kitchenPoller := service.NewKitchenPoller(kitchenService, cfg.Polling.Kitchen, sess.IsStaff, logger)
	go kitchenPoller.Follow(ctx, sess)

	// Changes written by other terminals sharing the store
	if w, ok := store.(storage.Watcher); ok {
		targets := map[string]service.Reloader{
			storage.KeyCart:  engine,
			storage.KeyUser:  sess,
			storage.KeyStaff: sess,
		}
		go func() {
			if err := service.FollowStore(ctx, w, targets, logger); err != nil {
				logger.Warn().Err(err).Msg("store watch stopped")
			}
		}()
	}

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService, logger),
		Cart:     handler.NewCartHandler(engine, catalogService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, cfg.Shop.WhatsApp, logger),
		Account:  handler.NewAccountHandler(accountService, logger),
		Orders:   handler.NewOrderHandler(trackerService, logger),
		Kitchen:  handler.NewKitchenHandler(kitchenService, logger),
	}, sess, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Backend.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("backend", cfg.Backend.BaseURL).
			Str("storage", cfg.Storage.Driver).
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

		// Stop pollers and watchers before draining requests
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// openStore builds the client-state store selected by the storage driver.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		store, pool, err := database.OpenStateStore(ctx, cfg.Database, cfg.Storage.Namespace, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, pool.Close, nil

	case config.StorageRedis:
		store, err := storage.NewRedisStore(ctx, cfg.Redis.URL, cfg.Storage.Namespace, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close redis store")
			}
		}, nil

	case config.StorageMemory:
		logger.Warn().Msg("memory storage: cart and session are lost on restart")
		return storage.NewMemoryStore(), func() {}, nil

	default:
		files, err := storage.NewFileStore(cfg.Storage.Dir, logger)
		if err != nil {
			return nil, nil, err
		}
		return storage.Prefixed(files, cfg.Storage.Namespace), func() {}, nil
	}
}

// zoneLoader picks the delivery zone source: S3 with local fallback when
// enabled, the local file system otherwise.
func zoneLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) delivery.Loader {
	fileLoader := delivery.NewFileLoader(logger)
	if !cfg.Delivery.S3.Enabled {
		logger.Info().Msg("using local file system for delivery zones (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := delivery.NewS3Loader(ctx, cfg.Delivery.S3.Bucket, cfg.Delivery.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}
	return delivery.NewFallbackLoader(s3Loader, fileLoader, cfg.Delivery.S3.Prefix, true, logger)
}

// attentionLogger is the default kitchen notifier.
func attentionLogger(logger zerolog.Logger) service.AttentionFunc {
	logger = logger.With().Str("component", "kitchen-attention").Logger()
	return func(active int) {
		logger.Warn().Int("active_orders", active).Msg("new order waiting in the kitchen")
	}
}
