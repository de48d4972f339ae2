// Package config provides configuration types and defaults for pcmon.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds all configuration for pcmon.
type Config struct {
	API         APIConfig         `yaml:"api" mapstructure:"api"`
	Polling     PollingConfig     `yaml:"polling" mapstructure:"polling"`
	Chart       ChartConfig       `yaml:"chart" mapstructure:"chart"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// APIConfig holds the simulation service connection settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"` // API root, e.g. http://localhost:5000/api
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`   // Per-request timeout
}

// PollingConfig holds the two polling cadences and the stall policy.
type PollingConfig struct {
	StatsInterval  time.Duration `yaml:"stats_interval" mapstructure:"stats_interval"`
	LogsInterval   time.Duration `yaml:"logs_interval" mapstructure:"logs_interval"`
	StallThreshold int           `yaml:"stall_threshold" mapstructure:"stall_threshold"` // Identical polls before stopping (0 = never stop)
}

// ChartConfig holds settings for the TUI trend chart.
type ChartConfig struct {
	Height int `yaml:"height" mapstructure:"height"` // Plot rows, excluding title and axis
}

// PathsConfig holds file paths.
type PathsConfig struct {
	DebugLog string `yaml:"debug_log" mapstructure:"debug_log"`
}

// LogRotationConfig holds settings for log file rotation.
// Used for the TUI debug log (lumberjack-based automatic rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// Default returns a Config matching the browser dashboard's cadence:
// statistics every second, logs every two seconds.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
			Timeout: 5 * time.Second,
		},
		Polling: PollingConfig{
			StatsInterval:  time.Second,
			LogsInterval:   2 * time.Second,
			StallThreshold: 5,
		},
		Chart: ChartConfig{
			Height: 12,
		},
		Paths: PathsConfig{
			DebugLog: ".pcmon/pcmon-debug.log",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must not be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: unsupported scheme %q", u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Polling.StatsInterval <= 0 {
		return fmt.Errorf("polling.stats_interval must be positive, got %s", c.Polling.StatsInterval)
	}
	if c.Polling.LogsInterval <= 0 {
		return fmt.Errorf("polling.logs_interval must be positive, got %s", c.Polling.LogsInterval)
	}
	if c.Polling.StallThreshold < 0 {
		return fmt.Errorf("polling.stall_threshold must not be negative, got %d", c.Polling.StallThreshold)
	}
	if c.Chart.Height < 3 {
		return fmt.Errorf("chart.height must be at least 3, got %d", c.Chart.Height)
	}
	return nil
}
