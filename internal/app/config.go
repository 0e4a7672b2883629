package app

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LayoutPaths []string // .hcl, .yaml and .yml files or directories

	// Blocks is the number of audio blocks to run; 0 runs until the context
	// is cancelled.
	Blocks int
	// BlockInterval paces the block loop. 0 runs blocks back to back.
	BlockInterval time.Duration
	WorkerCount   int
	// ValidatePlans checks every new plan's activation limits before use.
	ValidatePlans bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	PlanDB          string // sqlite path, empty disables the plan journal
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Blocks < 0 {
		return nil, fmt.Errorf("blocks must not be negative, got %d", cfg.Blocks)
	}
	if cfg.Blocks == 0 && cfg.BlockInterval <= 0 {
		return nil, errors.New("running without a block limit requires a positive block interval")
	}
	if cfg.BlockInterval < 0 {
		return nil, fmt.Errorf("block interval must not be negative, got %s", cfg.BlockInterval)
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.WorkerCount)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level %q: must be one of %v", cfg.LogLevel, logLevels)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log format %q: must be one of %v", cfg.LogFormat, logFormats)
	}

	return &cfg, nil
}
