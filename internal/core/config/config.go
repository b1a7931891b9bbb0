// Package config provides configuration management for the pipeline CLI.
package config

import (
	"fmt"
)

// PipelineConfig holds settings for the condition evaluation commands.
type PipelineConfig struct {
	ConditionsPath string // default conditions file for check/filter
	DataDir        string // working directory for local state
	LogLevel       string // debug, info, warn, error
	LogFormat      string // text or json
}

// DefaultPipelineConfig returns configuration with default values.
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		ConditionsPath: "",
		DataDir:        "./data",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Validate checks log level and format values.
func (c *PipelineConfig) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json; got %q", c.LogFormat)
	}
	return nil
}
