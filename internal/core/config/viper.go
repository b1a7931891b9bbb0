package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*PipelineConfig, error) {
	v := viper.New()

	// Defaults matching DefaultPipelineConfig
	v.SetDefault("pipeline.conditions_path", "")
	v.SetDefault("pipeline.data_dir", "./data")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.log_format", "text")

	// Bind environment variables with VECTOR_ prefix
	v.SetEnvPrefix("VECTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &PipelineConfig{
		ConditionsPath: v.GetString("pipeline.conditions_path"),
		DataDir:        v.GetString("pipeline.data_dir"),
		LogLevel:       v.GetString("pipeline.log_level"),
		LogFormat:      v.GetString("pipeline.log_format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
