// Package main is the entry point for the menuboard server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menuboard/internal/auth"
	"menuboard/internal/config"
	"menuboard/internal/database"
	"menuboard/internal/handlers"
	"menuboard/internal/menu"
	"menuboard/internal/reactive"
	"menuboard/internal/router"
	"menuboard/internal/storage"
	"menuboard/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for cross-process change events. When it is not
	// reachable the server still runs, with notifications limited to the
	// local process.
	var broker reactive.Broker
	valkeyClient, err := reactive.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, falling back to in-process events", "error", err)
		broker = reactive.NewMemoryBroker()
	} else {
		defer valkeyClient.Close()
		broker = reactive.NewValkeyBroker(valkeyClient)
	}

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	productStore := store.NewProductStore(db)
	branchStore := store.NewBranchStore(db)

	// Connect to S3-compatible object storage (optional — app works without it).
	var blobs menu.BlobStore
	if cfg.HasStorage() {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			blobs = storageClient
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", cfg.S3Bucket,
			)
		}
	} else {
		slog.Warn("s3 storage not configured — image uploads disabled")
	}

	svc := menu.NewService(categoryStore, productStore, branchStore, blobs, broker)

	// Create handler groups with their dependencies.
	verifier := auth.NewStaticVerifier(cfg.AdminUser, cfg.AdminPassword, cfg.AdminPasswordHash)
	adminHandlers := handlers.NewAdmin(svc)
	authHandlers := handlers.NewAuth(verifier)
	publicHandlers := handlers.NewPublic(svc)

	// Set up the Chi router with all middleware and routes.
	r := router.New(adminHandlers, authHandlers, publicHandlers)

	// WriteTimeout stays at zero because the menu stream endpoint holds its
	// response open for the life of the subscription.
	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
