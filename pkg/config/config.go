// Package config loads the engine's process configuration from
// environment variables (optionally via a .env file), typed and
// defaulted so every other package reads a concrete Config rather than
// calling os.Getenv directly.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the full process configuration.
type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Log    LogConfig
	Solver SolverConfig
	Pareto ParetoConfig
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string
}

// SolverConfig holds the solve time and iteration budget read from the
// environment. Neither front end passes these values into a
// domain.OptimizationConfig; requests without a config of their own use
// domain.DefaultOptimizationConfig.
type SolverConfig struct {
	TimeBudget      time.Duration
	IterationBudget int
}

// ParetoConfig bounds the multi-schedule orchestrator.
type ParetoConfig struct {
	MaxOptions int
	MaxWorkers int
}

// Load reads process env (and .env, if present) into a Config, applying
// defaults for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:       v.GetString("ENV"),
		Port:      v.GetInt("PORT"),
		APIPrefix: v.GetString("API_PREFIX"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Solver: SolverConfig{
			TimeBudget:      parseDuration(v.GetString("SOLVER_TIME_BUDGET"), 30*time.Second),
			IterationBudget: v.GetInt("SOLVER_ITERATION_BUDGET"),
		},
		Pareto: ParetoConfig{
			MaxOptions: v.GetInt("PARETO_MAX_OPTIONS"),
			MaxWorkers: v.GetInt("PARETO_MAX_WORKERS"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/v1")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SOLVER_TIME_BUDGET", "30s")
	v.SetDefault("SOLVER_ITERATION_BUDGET", 5000)

	v.SetDefault("PARETO_MAX_OPTIONS", 5)
	v.SetDefault("PARETO_MAX_WORKERS", 4)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
