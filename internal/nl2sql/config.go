// Package nl2sql turns natural-language questions into SQL queries by
// sending a rendered schema and the question to an Anthropic-compatible
// messages API.
package nl2sql

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ModelConfig struct {
	ID          string  `yaml:"id"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Config struct {
	APIKey       string      `yaml:"api_key"`
	Model        ModelConfig `yaml:"model"`
	API          APIConfig   `yaml:"api"`
	SchemaFormat string      `yaml:"schema_format"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			ID:          "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Temperature: 0,
		},
		API: APIConfig{
			BaseURL:        "https://api.anthropic.com",
			TimeoutSeconds: 60,
		},
		SchemaFormat: "dense",
	}
}

// LoadConfig reads a YAML config file and fills unset fields with defaults.
// The ANTHROPIC_API_KEY environment variable takes precedence over the file.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		applyDefaults(config)
	}

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.APIKey = key
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("no API key: set ANTHROPIC_API_KEY or api_key in the config file")
	}

	return config, nil
}

func applyDefaults(config *Config) {
	def := DefaultConfig()
	if config.Model.ID == "" {
		config.Model.ID = def.Model.ID
	}
	if config.Model.MaxTokens == 0 {
		config.Model.MaxTokens = def.Model.MaxTokens
	}
	if config.API.BaseURL == "" {
		config.API.BaseURL = def.API.BaseURL
	}
	if config.API.TimeoutSeconds == 0 {
		config.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if config.SchemaFormat == "" {
		config.SchemaFormat = def.SchemaFormat
	}
}
