package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alesweet/order-service/internal/application/services"
	"github.com/alesweet/order-service/internal/auth"
	"github.com/alesweet/order-service/internal/config"
	"github.com/alesweet/order-service/internal/infrastructure/db/postgres"
	rest "github.com/alesweet/order-service/internal/interface/api/rest/chi"
	"github.com/alesweet/order-service/internal/models/user"
	"github.com/alesweet/order-service/pkg/limiter"
	"github.com/alesweet/order-service/pkg/logger"
	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
)

// Version indicates the current version of the application.
var Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	// Load application configurations.
	cfg := config.MustLoad()

	// Create root logger tagged with server version.
	logger := logger.New(cfg).With(serverCtx, "version", Version)

	db, err := postgres.Connect(cfg, logger)
	if err != nil {
		return err
	}

	// Check connectivity and DSN correctness.
	if err = db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}

	// Close connection.
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(err)
		}
		_ = logger.Sync()
	}()

	// Create default transaction manager for database/sql package.
	trManager := manager.Must(
		trmsql.NewDefaultFactory(db),
		manager.WithCtxManager(trmcontext.DefaultManager),
	)

	// Init repository and service for auth.
	authRepo, err := auth.NewRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to init auth repository: %w", err)
	}

	authService, err := auth.NewService(authRepo, logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to init auth service: %w", err)
	}

	// Init repositories.
	orderRepo, err := postgres.NewOrderRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to init order repository: %w", err)
	}

	productRepo, err := postgres.NewProductRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to init product repository: %w", err)
	}

	customerRepo, err := postgres.NewCustomerRepository(db, trmsql.DefaultCtxGetter, logger)
	if err != nil {
		return fmt.Errorf("failed to init customer repository: %w", err)
	}

	// Init services.
	orderService, err := services.NewOrderService(orderRepo, trManager, logger)
	if err != nil {
		return fmt.Errorf("failed to init order service: %w", err)
	}

	productService, err := services.NewProductService(productRepo, trManager, logger)
	if err != nil {
		return fmt.Errorf("failed to init product service: %w", err)
	}

	customerService, err := services.NewCustomerService(customerRepo, trManager, logger)
	if err != nil {
		return fmt.Errorf("failed to init customer service: %w", err)
	}

	// Create root router.
	router := rest.InitChi(logger)

	// Health check, the only route without authentication.
	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Ale Sweet API running",
		})
	})

	// Uploaded product images.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.Uploads.Dir))))

	// Auth routes.
	auth.HandlerWithOptions(authService, auth.ChiServerOptions{
		BaseURL:          "/api/auth",
		BaseRouter:       router,
		ErrorHandlerFunc: auth.ErrorHandlerFunc,
		AuthMiddlewares:  []auth.MiddlewareFunc{authService.Middleware},
	})

	authenticated := []rest.MiddlewareFunc{authService.Middleware}
	adminOnly := []rest.MiddlewareFunc{auth.RequireRole(user.RoleAdmin)}

	// Order routes.
	rest.NewOrderController(orderService, logger, rest.ChiServerOptions{
		BaseURL:          "/api",
		BaseRouter:       router,
		Middlewares:      authenticated,
		AdminMiddlewares: adminOnly,
	})

	// Product routes.
	uploadLimiter := limiter.New(cfg.Uploads.RateInterval, cfg.Uploads.RateBurst)
	rest.NewProductController(productService, uploadLimiter, cfg, logger, rest.ChiServerOptions{
		BaseURL:          "/api",
		BaseRouter:       router,
		Middlewares:      authenticated,
		AdminMiddlewares: adminOnly,
	})

	// Customer routes.
	rest.NewCustomerController(customerService, logger, rest.ChiServerOptions{
		BaseURL:          "/api",
		BaseRouter:       router,
		Middlewares:      authenticated,
		AdminMiddlewares: adminOnly,
	})

	// Build HTTP server.
	hs := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		ReadHeaderTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
		Handler:           router,
	}

	// Graceful shutdown.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		signal := <-sig

		logger.With(serverCtx, "signal", signal.String()).
			Infof("Shutting down server with %s timeout",
				cfg.HTTPServer.ShutdownTimeout)

		if err = hs.Shutdown(serverCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %s", err)
		}
		serverStopCtx()
	}()

	// Start the HTTP server with graceful shutdown.
	logger.Infof("Server %v is running at %v", Version, cfg.HTTPServer.Address)
	if err = hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run server failed: %w", err)
	}

	// Wait for server context to be stopped or force exit if timeout exceeded.
	select {
	case <-serverCtx.Done():
	case <-time.After(cfg.HTTPServer.ShutdownTimeout):
		return errors.New("graceful shutdown timed out.. forcing exit")
	}

	return nil
}
