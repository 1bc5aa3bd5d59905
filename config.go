package main

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	"github.com/smart-spoon-core/advisor/internal/core"
	pkgredis "github.com/smart-spoon-core/advisor/pkg/redis"
)

// AppConfig defines all configurable parameters of the advisor,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"omitempty,oneof=trace debug info warn error"`

	// Infrastructure; an empty REDIS_URL keeps the transcript in memory
	Redis pkgredis.Config

	// Advisor
	Session model.SessionConfig
	Image   model.ImageConfig
	Matcher model.MatcherConfig
}

// Env returns the parsed deployment environment.
func (c *AppConfig) Env() core.Environment {
	return core.ParseEnvironment(c.Environment)
}

// SessionTTL parses SESSION_TTL.
func (c *AppConfig) SessionTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Session.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid SESSION_TTL %q: %w", c.Session.TTL, err)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("invalid SESSION_TTL %q: must not be negative", c.Session.TTL)
	}
	return ttl, nil
}

// loadConfig binds the environment to AppConfig and validates it.
func loadConfig() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, err := cfg.SessionTTL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
