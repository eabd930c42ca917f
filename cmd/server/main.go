package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"screenguess/internal/cache"
	"screenguess/internal/config"
	"screenguess/internal/database"
	"screenguess/internal/handlers"
	"screenguess/internal/logging"
	"screenguess/internal/repository"
	"screenguess/internal/security"
	"screenguess/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		Debug:      cfg.Debug,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connection established", zap.String("type", cfg.DatabaseType))

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Migrations completed successfully")

	// Initialize repositories
	gameRepo := repository.NewGameRepository(db)
	stateRepo := repository.NewStateRepository(db)
	shareRepo := repository.NewShareRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Catalog
	catalog := service.NewCatalogService(gameRepo, logger)
	if _, err := catalog.SeedFromFile(cfg.CatalogPath); err != nil {
		logger.Warn("Failed to seed catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	if err := catalog.Reload(); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(catalog.Games()) == 0 {
		logger.Warn("Catalog is empty; game endpoints will return 503 until games are imported")
	}

	leaderboard, closeLeaderboard := newLeaderboard(cfg, logger)
	defer closeLeaderboard()

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug, logger)
	if err != nil {
		logger.Warn("Email service unavailable", zap.Error(err))
		emailService = nil
	}

	// Initialize services
	endlessService := service.NewEndlessService(catalog, stateRepo, leaderboard, logger)
	var mailer service.Mailer
	if emailService != nil {
		mailer = emailService
	}
	shareService := service.NewShareService(shareRepo, endlessService, mailer, cfg.AppBaseURL, logger)
	levelService := service.NewLevelService(catalog, progressRepo, settingsRepo, cfg.StandardPinnedLevels, cfg.StandardSeed, logger)

	if _, err := levelService.SyncOrder(); err != nil {
		logger.Warn("Failed to sync standard order", zap.Error(err))
	}

	if cfg.AdminKeyHash == "" {
		logger.Warn("ADMIN_KEY_HASH not set; catalog import is disabled")
	}

	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	limiter := security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer limiter.Close()
	middleware := handlers.NewMiddleware(tokens, limiter, cfg.AdminKeyHash, logger)

	router := handlers.NewRouter(handlers.Services{
		Catalog: catalog,
		Endless: endlessService,
		Shares:  shareService,
		Levels:  levelService,
	}, middleware, logger)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", "http://localhost"+addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		logger.Info("Server shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// newLeaderboard connects to Redis when configured and falls back to an
// in-process board otherwise
func newLeaderboard(cfg *config.Config, logger *zap.Logger) (cache.LeaderboardCache, func()) {
	if !cfg.LeaderboardEnabled() {
		logger.Info("Leaderboard running in memory: REDIS_ADDR not configured")
		return cache.NewMemoryLeaderboard(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Warn("Failed to ping Redis, using in-memory leaderboard", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		rdb.Close()
		return cache.NewMemoryLeaderboard(), func() {}
	}

	logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
	return cache.NewLeaderboardCache(rdb, cfg.LeaderboardKey), func() { rdb.Close() }
}
