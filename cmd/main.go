package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/SuFxGIT/scoutarr-sub000/internal/arr"
	"github.com/SuFxGIT/scoutarr-sub000/internal/bootstrap"
	"github.com/SuFxGIT/scoutarr-sub000/internal/cache"
	"github.com/SuFxGIT/scoutarr-sub000/internal/config"
	"github.com/SuFxGIT/scoutarr-sub000/internal/models"
	"github.com/SuFxGIT/scoutarr-sub000/internal/notify"
	"github.com/SuFxGIT/scoutarr-sub000/internal/repository"
	"github.com/SuFxGIT/scoutarr-sub000/internal/router"
	"github.com/SuFxGIT/scoutarr-sub000/internal/scheduler"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// --- Tag cache (Redis with in-memory fallback) ---
	tags, cacheErr := cache.NewTagCache(cfg.Redis.Addr, cfg.Redis.Pass, cfg.Redis.DB, time.Hour)
	if cacheErr != nil {
		logger.Warn("Redis unavailable for tag cache, using in-memory fallback", zap.Error(cacheErr))
	}

	// --- Notifier ---
	var notifier scheduler.Notifier
	tgNotifier, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
	if err != nil {
		logger.Warn("Telegram notifier disabled", zap.Error(err))
	} else if tgNotifier != nil {
		notifier = tgNotifier
	}

	// --- Scheduler ---
	targetRepo := repository.NewTargetRepository(db)
	reporter := repository.NewReporter(
		repository.NewRunRepository(db),
		repository.NewStatRepository(db),
	)
	factory := arr.NewFactory(tags, logger)
	orch := scheduler.NewOrchestrator(
		func(t *models.Target) (arr.Searcher, error) { return factory.ForTarget(t) },
		cfg.Scheduler.Unattended,
		logger,
	)
	core := scheduler.NewCore(targetRepo, orch, reporter, notifier, scheduler.Settings{
		Enabled:     cfg.Scheduler.Enabled,
		Schedule:    cfg.Scheduler.Schedule,
		HistorySize: cfg.Scheduler.HistorySize,
	}, logger)
	if err := core.Reload(context.Background()); err != nil {
		logger.Error("Initial scheduler load incomplete", zap.Error(err))
	}

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true
	router.Setup(e, db, core, logger, cfg.API.Key)

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting scoutarr server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	core.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
