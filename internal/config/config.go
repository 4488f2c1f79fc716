// Package config loads kernelgrep configuration from YAML files and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file consulted when --config is not given.
const DefaultConfigPath = ".kernelgrep/config.yaml"

// Config represents kernelgrep configuration options
type Config struct {
	// BaseURL is the directory listing page to scrape for kernel versions
	BaseURL string `yaml:"base_url"`

	// ChangesFile is the filename fetched from each version directory
	ChangesFile string `yaml:"changes_file"`

	// MaxWorkers is the width of the download worker pool
	MaxWorkers int `yaml:"max_workers"`

	// RequestTimeout is the per-request HTTP deadline
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// ProgressInterval is the number of completed directories between
	// progress log lines
	ProgressInterval int `yaml:"progress_interval"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          "https://kernel.ubuntu.com/~kernel-ppa/mainline/",
		ChangesFile:      "CHANGES",
		MaxWorkers:       10,
		RequestTimeout:   10 * time.Second,
		LogLevel:         "info",
		ProgressInterval: 20,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
// Environment variables (optionally sourced from a .env file) override file
// values; see applyEnv for the recognized names.
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults with env applied (not an error)
		if err := cfg.applyEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Use a temporary struct to handle duration parsing
	type yamlConfig struct {
		BaseURL          string `yaml:"base_url"`
		ChangesFile      string `yaml:"changes_file"`
		MaxWorkers       int    `yaml:"max_workers"`
		RequestTimeout   string `yaml:"request_timeout"`
		LogLevel         string `yaml:"log_level"`
		ProgressInterval int    `yaml:"progress_interval"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.BaseURL != "" {
		cfg.BaseURL = yamlCfg.BaseURL
	}
	if yamlCfg.ChangesFile != "" {
		cfg.ChangesFile = yamlCfg.ChangesFile
	}
	if yamlCfg.MaxWorkers != 0 {
		cfg.MaxWorkers = yamlCfg.MaxWorkers
	}
	if yamlCfg.RequestTimeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid request_timeout %q: %w", yamlCfg.RequestTimeout, err)
		}
		cfg.RequestTimeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.ProgressInterval != 0 {
		cfg.ProgressInterval = yamlCfg.ProgressInterval
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays KERNELGREP_* environment variables onto the config.
// A .env file in the working directory is sourced first when present;
// variables already set in the environment win over .env entries.
func (c *Config) applyEnv() error {
	// godotenv returns an error when no .env exists; that is the common case.
	_ = godotenv.Load()

	if v := os.Getenv("KERNELGREP_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("KERNELGREP_CHANGES_FILE"); v != "" {
		c.ChangesFile = v
	}
	if v := os.Getenv("KERNELGREP_MAX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid KERNELGREP_MAX_WORKERS %q: %w", v, err)
		}
		c.MaxWorkers = n
	}
	if v := os.Getenv("KERNELGREP_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid KERNELGREP_REQUEST_TIMEOUT %q: %w", v, err)
		}
		c.RequestTimeout = d
	}
	if v := os.Getenv("KERNELGREP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}
