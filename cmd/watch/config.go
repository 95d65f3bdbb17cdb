package main

import (
	"time"

	"poker-platform/tournament-sync/internal/config"
	"poker-platform/tournament-sync/internal/middleware"
	"poker-platform/tournament-sync/internal/store"
)

// Config holds all configuration values for the watcher
type Config struct {
	ServiceURL   string
	TournamentID string
	// PlayerID pins the viewer's identity. Without it the first human
	// player in the tournament is assumed.
	PlayerID string
	// PlayerName registers the viewer at startup when set.
	PlayerName string

	PollInterval   time.Duration
	RequestTimeout time.Duration
	ListenAddr     string

	Environment string
	LogLevel    string

	RateLimit middleware.RateLimiterConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() Config {
	config.LoadDotEnv()

	return Config{
		ServiceURL:     config.GetEnv("SERVICE_URL", "http://localhost:8080"),
		TournamentID:   config.GetEnv("TOURNAMENT_ID", ""),
		PlayerID:       config.GetEnv("PLAYER_ID", ""),
		PlayerName:     config.GetEnv("PLAYER_NAME", ""),
		PollInterval:   config.GetEnvDuration("POLL_INTERVAL", store.DefaultPollInterval),
		RequestTimeout: config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ListenAddr:     config.GetEnv("LISTEN_ADDR", ":8090"),
		Environment:    config.GetEnv("ENV", "development"),
		LogLevel:       config.GetEnv("LOG_LEVEL", "info"),
		RateLimit:      middleware.DefaultRateLimiterConfig,
	}
}
