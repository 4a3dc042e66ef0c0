package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/foxxcyber/menu-board/internal/config"
	"github.com/foxxcyber/menu-board/internal/database"
	"github.com/foxxcyber/menu-board/internal/handlers"
	"github.com/foxxcyber/menu-board/internal/logger"
	"github.com/foxxcyber/menu-board/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	cfg := config.Load()

	appLogger, err := logger.New(logger.ForEnvironment(cfg.Environment, cfg.LogLevel))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, appLogger.Named("db"))
	if err != nil {
		appLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		appLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	if cfg.AdminPassword != "" {
		if _, err := db.EnsureAdminUser(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			appLogger.Warn("could not ensure admin user", zap.Error(err))
		}
	}

	opts := handlers.Options{Logger: appLogger}

	// Snapshot cache is optional
	if cfg.RedisURL != "" {
		client, err := services.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			appLogger.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			opts.Cache = services.NewSnapshotCache(client, cfg.CacheTTL, appLogger.Named("cache"))
			appLogger.Info("snapshot cache enabled", zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	// Media storage is optional
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		storage, err := services.NewStorageService(
			cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
		)
		if err != nil {
			appLogger.Warn("failed to initialize storage service", zap.Error(err))
		} else {
			if err := storage.EnsureBucket(ctx); err != nil {
				appLogger.Warn("failed to ensure media bucket exists", zap.Error(err))
			}
			opts.Media = storage
			appLogger.Info("media storage enabled", zap.String("bucket", storage.GetBucketName()))
		}
	} else {
		appLogger.Info("S3 credentials not configured, media signing disabled")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		AppName:      "menu-board",
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Setup-Token",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	h := handlers.New(db, cfg, opts)
	h.Routes(app)

	go func() {
		appLogger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.Any("features", cfg.Features),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLogger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
