// Command simulator runs a local tournament service: it stores tournaments,
// runs their blind clocks and serves the REST API the watcher polls.
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

	"poker-platform/tournament-sync/internal/logging"
	"poker-platform/tournament-sync/internal/middleware"
	"poker-platform/tournament-sync/internal/server/tournament"
	"poker-platform/tournament-sync/internal/simulator"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := LoadConfig()
	logging.Setup(cfg.LogLevel, cfg.Environment)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := simulator.OpenDB(cfg.DBConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	service := simulator.NewService(db)
	if cfg.SeedFile != "" {
		seed, err := simulator.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load seed")
		}
		ids, err := service.ApplySeed(seed)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to apply seed")
		}
		log.Info().Int("tournaments", len(ids)).Str("file", cfg.SeedFile).Msg("seed applied")
	}

	scheduler, err := simulator.NewScheduler(service, cfg.Scheduler)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	scheduler.Start()

	readLimiter := middleware.NewRateLimiter(cfg.ReadLimit)
	commandLimiter := middleware.NewRateLimiter(cfg.CommandLimit)
	defer readLimiter.Stop()
	defer commandLimiter.Stop()

	router := tournament.NewRouter(service, tournament.Limiters{
		Read:    readLimiter,
		Command: commandLimiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("driver", cfg.DBConfig.Driver).Msg("simulator starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("simulator shutdown complete")
}
