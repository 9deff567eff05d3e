package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"propkit/cache"
)

// Config is the YAML tuning surface for a registry.
type Config struct {
	Version string `yaml:"version,omitempty"`
	// BypassVisibility toggles unexported member access for every reflector
	// the registry builds. Unset keeps the built-in default.
	BypassVisibility *bool       `yaml:"bypass_visibility,omitempty"`
	Cache            CacheConfig `yaml:"cache,omitempty"`
}

// CacheConfig tunes the reflector store.
type CacheConfig struct {
	Capacity int  `yaml:"capacity,omitempty"`
	LogHits  bool `yaml:"log_hits,omitempty"`
}

// LoadFile loads and parses a YAML registry configuration from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Cache.Capacity <= 0 {
		cfg.Cache.Capacity = cache.DefaultCapacity
	}
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// WriteFile writes a Config to the given path.
func WriteFile(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
