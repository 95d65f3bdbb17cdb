package main

import (
	"time"

	"poker-platform/tournament-sync/internal/config"
	"poker-platform/tournament-sync/internal/middleware"
	"poker-platform/tournament-sync/internal/simulator"
)

// Config holds all configuration values for the simulator
type Config struct {
	DBConfig simulator.DBConfig

	ServerPort  string
	Environment string
	LogLevel    string

	// SeedFile is a YAML file of tournaments to create at boot. Empty skips
	// seeding.
	SeedFile string

	Scheduler simulator.SchedulerConfig

	ReadLimit    middleware.RateLimiterConfig
	CommandLimit middleware.RateLimiterConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() Config {
	config.LoadDotEnv()

	return Config{
		DBConfig: simulator.DBConfig{
			Driver:   config.GetEnv("SIM_DB_DRIVER", simulator.DriverSQLite),
			Path:     config.GetEnv("SIM_DB_PATH", ""),
			Host:     config.GetEnv("DB_HOST", "localhost"),
			Port:     config.GetEnv("DB_PORT", "3306"),
			User:     config.GetEnv("DB_USER", "root"),
			Password: config.GetEnv("DB_PASSWORD", ""),
			DBName:   config.GetEnv("DB_NAME", "tournament_sim"),
		},
		ServerPort:  config.GetEnv("SERVER_PORT", "8080"),
		Environment: config.GetEnv("ENV", "development"),
		LogLevel:    config.GetEnv("LOG_LEVEL", "info"),
		SeedFile:    config.GetEnv("SIM_SEED_FILE", ""),
		Scheduler: simulator.SchedulerConfig{
			TickInterval: config.GetEnvDuration("SIM_TICK_INTERVAL", simulator.DefaultTickInterval),
			HandInterval: handInterval(),
		},
		ReadLimit: middleware.RateLimiterConfig{
			RequestsPerSecond: float64(config.GetEnvInt("RATE_LIMIT_RPS", int(middleware.DefaultRateLimiterConfig.RequestsPerSecond))),
			BurstSize:         config.GetEnvInt("RATE_LIMIT_BURST", middleware.DefaultRateLimiterConfig.BurstSize),
			CleanupInterval:   middleware.DefaultRateLimiterConfig.CleanupInterval,
		},
		CommandLimit: middleware.CommandRateLimiterConfig,
	}
}

// handInterval is zero, turning hand simulation off, unless SIM_PLAY_HANDS
// is set.
func handInterval() time.Duration {
	if !config.GetEnvBool("SIM_PLAY_HANDS", false) {
		return 0
	}
	return config.GetEnvDuration("SIM_HAND_INTERVAL", simulator.DefaultHandInterval)
}
