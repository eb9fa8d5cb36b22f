package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvPrice    = "TOKENCOST_PRICE"
	EnvLogLevel = "TOKENCOST_LOG_LEVEL"
)

// Config holds all configuration for the tokencost tool.
type Config struct {
	Estimate EstimateConfig `yaml:"estimate"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EstimateConfig holds tokenization and pricing configuration.
type EstimateConfig struct {
	Price               float64  `yaml:"price"` // Cost of a single token
	IncludeSpecialChars bool     `yaml:"include_special_chars"`
	Includes            []string `yaml:"includes"` // Glob patterns used by scan
	Excludes            []string `yaml:"excludes"`
}

// OutputConfig holds result rendering configuration.
type OutputConfig struct {
	Format     string `yaml:"format"` // "text", "json", "markdown"
	Precision  int    `yaml:"precision"`
	ShowTokens bool   `yaml:"show_tokens"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Optional rotating log file
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Estimate: EstimateConfig{
			Price:               0,
			IncludeSpecialChars: false,
			Includes:            []string{"**/*.txt"},
			Excludes:            []string{"**/.git/**", "**/node_modules/**", "**/vendor/**"},
		},
		Output: OutputConfig{
			Format:     "text",
			Precision:  2,
			ShowTokens: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for tokencost.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "tokencost.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".tokencost", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvPrice)); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPrice, err)
		}
		c.Estimate.Price = price
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks values that cannot be repaired with defaults.
func (c *Config) Validate() error {
	if c.Estimate.Price < 0 {
		return fmt.Errorf("estimate.price must not be negative, got %v", c.Estimate.Price)
	}
	switch c.Output.Format {
	case "text", "json", "markdown":
	default:
		return fmt.Errorf("unknown output.format %q", c.Output.Format)
	}
	if c.Output.Precision < 0 {
		return fmt.Errorf("output.precision must not be negative, got %d", c.Output.Precision)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the path of the config file inside dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, "tokencost.yaml")
}
