package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/procnet/route/routetable"
)

// Config represents the runtime configuration for the route table tooling
type Config struct {
	// Pseudo-file locations; overridable for fixtures and containers
	IPv4RoutePath string
	IPv6RoutePath string

	// Header lines discarded before the first entry, per family
	IPv4HeaderLines int
	IPv6HeaderLines int

	// Monitor settings
	PollInterval time.Duration
	Concurrency  int

	// Output settings
	LogLevel   string
	SilentMode bool
}

// NewConfig creates a new config with default values
func NewConfig() *Config {
	return &Config{
		IPv4RoutePath:   routetable.ProcNetRoute,
		IPv6RoutePath:   routetable.ProcNetIPv6Route,
		IPv4HeaderLines: 1,
		IPv6HeaderLines: 0,
		PollInterval:    2 * time.Second,
		Concurrency:     2,
		LogLevel:        "info",
	}
}

// fileConfig is the YAML shape of an on-disk config file. Absent fields keep
// their defaults.
type fileConfig struct {
	IPv4RoutePath   *string `yaml:"ipv4_route_path"`
	IPv6RoutePath   *string `yaml:"ipv6_route_path"`
	IPv4HeaderLines *int    `yaml:"ipv4_header_lines"`
	IPv6HeaderLines *int    `yaml:"ipv6_header_lines"`
	PollSeconds     *int    `yaml:"poll_seconds"`
	Concurrency     *int    `yaml:"concurrency"`
	LogLevel        *string `yaml:"log_level"`
	Silent          *bool   `yaml:"silent"`
}

// LoadConfig reads a YAML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if fc.IPv4RoutePath != nil {
		cfg.IPv4RoutePath = *fc.IPv4RoutePath
	}
	if fc.IPv6RoutePath != nil {
		cfg.IPv6RoutePath = *fc.IPv6RoutePath
	}
	if fc.IPv4HeaderLines != nil {
		cfg.IPv4HeaderLines = *fc.IPv4HeaderLines
	}
	if fc.IPv6HeaderLines != nil {
		cfg.IPv6HeaderLines = *fc.IPv6HeaderLines
	}
	if fc.PollSeconds != nil {
		cfg.PollInterval = time.Duration(*fc.PollSeconds) * time.Second
	}
	if fc.Concurrency != nil {
		cfg.Concurrency = *fc.Concurrency
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.Silent != nil {
		cfg.SilentMode = *fc.Silent
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values no component can work with
func (c *Config) Validate() error {
	if c.IPv4RoutePath == "" || c.IPv6RoutePath == "" {
		return fmt.Errorf("route table paths must not be empty")
	}
	if c.IPv4HeaderLines < 0 || c.IPv6HeaderLines < 0 {
		return fmt.Errorf("header line counts must not be negative")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	return nil
}
