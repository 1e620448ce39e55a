// Package config loads process configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Solver struct {
		// MaxSteps caps the step budget accepted from API clients.
		MaxSteps int `env:"SOLVER_MAX_STEPS" envDefault:"100000"`
		// MaxDim caps the problem dimension accepted from API clients.
		MaxDim int `env:"SOLVER_MAX_DIM" envDefault:"200"`
		// MaxJobs caps the number of concurrently running jobs.
		MaxJobs int `env:"SOLVER_MAX_JOBS" envDefault:"16"`
		// RetainJobs caps how many finished jobs stay queryable before
		// the oldest are pruned.
		RetainJobs int `env:"SOLVER_RETAIN_JOBS" envDefault:"100"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Development runs default to human-readable debug output unless
	// explicitly overridden.
	if cfg.Environment == "development" {
		if cfg.Logging.Level == "info" {
			cfg.Logging.Level = "debug"
		}
	}

	return cfg, nil
}
