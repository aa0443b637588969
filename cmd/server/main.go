// Package main is the entry point for the investment advisory service.
// The service walks a client through a risk questionnaire, maps the
// resulting risk category to an ETF allocation model, computes the
// portfolio's historical return and volatility, and projects compound
// growth against a contributions-only baseline.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/advisor/internal/clientdata"
	"github.com/aristath/advisor/internal/clients/yahoo"
	"github.com/aristath/advisor/internal/config"
	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/modules/questionnaire"
	"github.com/aristath/advisor/internal/modules/session"
	"github.com/aristath/advisor/internal/modules/simulation"
	"github.com/aristath/advisor/internal/modules/statistics"
	"github.com/aristath/advisor/internal/scheduler"
	"github.com/aristath/advisor/internal/server"
	"github.com/aristath/advisor/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting advisory service")

	// Price cache database. Domain state is per-session and in memory;
	// only provider responses are persisted.
	cacheDB, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "client_data.db"),
		Name: "client_data",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open price cache database")
	}
	defer cacheDB.Close()

	cacheRepo := clientdata.NewRepository(cacheDB.Conn())
	if err := cacheRepo.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize price cache schema")
	}

	yahooClient := yahoo.NewClient(cacheRepo, cfg.PriceCacheTTL, log)
	if cfg.PriceBaseURL != "" {
		yahooClient.SetBaseURL(cfg.PriceBaseURL)
	}

	sched := scheduler.New(log)
	cleanupJob := clientdata.NewCleanupJob(cacheRepo, log)
	if err := sched.AddJob("@daily", cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule price cache cleanup")
	}
	sched.Start()
	defer sched.Stop()

	// Prune anything that expired while the service was down.
	if err := sched.RunNow(cleanupJob); err != nil {
		log.Warn().Err(err).Msg("Initial price cache cleanup failed")
	}

	sessions := session.NewManager(log)

	srv := server.New(server.Config{
		Log:           log,
		Config:        cfg,
		CacheDB:       cacheDB,
		Sessions:      sessions,
		Questionnaire: questionnaire.NewService(log),
		Statistics:    statistics.NewService(log),
		Simulation:    simulation.NewService(log),
		Prices:        yahooClient,
		Port:          cfg.Port,
		DevMode:       cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
