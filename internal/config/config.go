// Package config loads runtime settings from the environment. Flags handle
// one-shot CLI options; the environment configures the long-running service
// deployment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration, read from SUNSWARM_* variables.
type Config struct {
	Run    RunConfig    `envPrefix:"RUN_"`
	Server ServerConfig `envPrefix:"SERVER_"`
	Store  StoreConfig  `envPrefix:"STORE_"`
	Log    LogConfig    `envPrefix:"LOG_"`
}

// RunConfig parameterizes the simulation itself.
type RunConfig struct {
	// Seed of 0 selects a time-based seed at startup.
	Seed      int64   `env:"SEED" envDefault:"0"`
	GridSize  int     `env:"GRID_SIZE" envDefault:"10"`
	TimeScale float64 `env:"TIME_SCALE" envDefault:"60"`
	StartHour float64 `env:"START_HOUR" envDefault:"6"`
	Workers   int     `env:"WORKERS" envDefault:"1"`

	TickInterval  time.Duration `env:"TICK_INTERVAL" envDefault:"250ms"`
	EpochInterval time.Duration `env:"EPOCH_INTERVAL" envDefault:"30s"`
	// EpochLimit of 0 runs until interrupted.
	EpochLimit int `env:"EPOCH_LIMIT" envDefault:"0"`

	EliteFraction float64 `env:"ELITE_FRACTION" envDefault:"0.15"`
	Selector      string  `env:"SELECTOR" envDefault:"elite"`

	// Optional measurement CSVs; empty paths fall back to built-in tables.
	PowerProfileCSV string `env:"POWER_PROFILE_CSV"`
	SolarProfileCSV string `env:"SOLAR_PROFILE_CSV"`

	ArtifactsDir string `env:"ARTIFACTS_DIR" envDefault:"artifacts"`
}

// ServerConfig parameterizes the read-only HTTP state surface.
type ServerConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Addr    string `env:"ADDR" envDefault:":8090"`
}

// StoreConfig selects the diagnostics store. An empty Kind defers to the
// build's default store.
type StoreConfig struct {
	Kind string `env:"KIND"`
	Path string `env:"PATH" envDefault:"sunswarm.db"`
}

// LogConfig tunes the hclog root logger.
type LogConfig struct {
	Level string `env:"LEVEL" envDefault:"info"`
	JSON  bool   `env:"JSON" envDefault:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SUNSWARM_"}); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return cfg, nil
}
