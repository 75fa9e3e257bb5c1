// Package config loads application configuration from an optional YAML
// file overlaid with MACROPULSE_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. MACROPULSE_SERVER_PORT.
const envPrefix = "MACROPULSE"

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Report   ReportConfig   `yaml:"report" envconfig:"REPORT"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"` // "json" or "text"
	Output   string `yaml:"output" envconfig:"OUTPUT"` // "console", "file", or "both"
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// SecurityConfig contains request protection configuration.
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// ReportConfig contains defaults for generated analytics reports and chart
// projections.
type ReportConfig struct {
	OutputDir    string  `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	ChartWidth   float64 `yaml:"chart_width" envconfig:"CHART_WIDTH"`
	ChartHeight  float64 `yaml:"chart_height" envconfig:"CHART_HEIGHT"`
	ChartPadding float64 `yaml:"chart_padding" envconfig:"CHART_PADDING"`
	TickCount    int     `yaml:"tick_count" envconfig:"TICK_COUNT"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/macropulse.log",
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Report: ReportConfig{
			OutputDir:    "reports",
			ChartWidth:   640,
			ChartHeight:  240,
			ChartPadding: 16,
			TickCount:    6,
		},
	}
}

// Load builds the effective configuration: built-in defaults, overlaid by
// the YAML file at configPath if it exists, overlaid by environment
// variables. An empty configPath skips the file step.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
			}
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the application cannot run
// with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	if c.Security.RateLimit.Enabled {
		if c.Security.RateLimit.RPS <= 0 {
			return fmt.Errorf("rate limit rps must be positive, got %g", c.Security.RateLimit.RPS)
		}
		if c.Security.RateLimit.Burst < 1 {
			return fmt.Errorf("rate limit burst must be at least 1, got %d", c.Security.RateLimit.Burst)
		}
	}

	if c.Report.ChartWidth <= 2*c.Report.ChartPadding {
		return fmt.Errorf("chart width %g leaves no drawing area inside padding %g",
			c.Report.ChartWidth, c.Report.ChartPadding)
	}
	if c.Report.ChartHeight <= 2*c.Report.ChartPadding {
		return fmt.Errorf("chart height %g leaves no drawing area inside padding %g",
			c.Report.ChartHeight, c.Report.ChartPadding)
	}
	if c.Report.TickCount < 1 {
		return fmt.Errorf("tick count must be at least 1, got %d", c.Report.TickCount)
	}

	return nil
}
