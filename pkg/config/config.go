package config

import (
	"time"

	"github.com/sdejongh/foldermatch/pkg/models"
	"github.com/sdejongh/foldermatch/pkg/scan"
)

// Config represents the application configuration
type Config struct {
	Compare     CompareConfig     `yaml:"compare"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// CompareConfig holds the defaults of the compare command
type CompareConfig struct {
	CheckContent bool              `yaml:"check_content"`
	Action       models.ActionKind `yaml:"action"`      // "none", "relocate" or "delete"
	RelocateTo   string            `yaml:"relocate_to"` // Subfolder used by "relocate"
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	MaxWorkers  int           `yaml:"max_workers"`
	ScanTimeout time.Duration `yaml:"scan_timeout"` // 0 = no limit
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format string `yaml:"format"` // "human" or "json"
	Quiet  bool   `yaml:"quiet"`  // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "console"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = stderr)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			CheckContent: false,
			Action:       models.ActionNone,
			RelocateTo:   "",
		},
		Performance: PerformanceConfig{
			MaxWorkers:  scan.DefaultWorkers,
			ScanTimeout: 0,
		},
		Output: OutputConfig{
			Format: "human",
			Quiet:  false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "console",
			Level:   "info",
			File:    "",
		},
		Exclude: []string{},
	}
}

// ReconciliationAction builds the action described by the compare section
func (c *CompareConfig) ReconciliationAction() models.ReconciliationAction {
	return models.ReconciliationAction{Kind: c.Action, Subfolder: c.RelocateTo}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Compare.ReconciliationAction().Validate(); err != nil {
		return &models.ValidationError{
			Field:   "compare.action",
			Message: err.Error(),
		}
	}

	if c.Performance.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	if c.Performance.ScanTimeout < 0 {
		return &models.ValidationError{
			Field:   "performance.scan_timeout",
			Message: "must not be negative",
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "console": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'console'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
