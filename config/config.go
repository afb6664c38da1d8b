// Package config handles import tool configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all import tool settings.
type Config struct {
	Import    ImportConfig    `yaml:"import"`
	Resources ResourcesConfig `yaml:"resources"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ImportConfig holds scene construction settings.
type ImportConfig struct {
	CastShadows    bool `yaml:"cast_shadows"`
	ReceiveShadows bool `yaml:"receive_shadows"`
}

// ResourcesConfig holds buffer and texture loading settings.
type ResourcesConfig struct {
	// Skip disables resource loading; only the scene graph and the
	// binding plan are built.
	Skip bool `yaml:"skip"`
	// Dir overrides the directory relative URIs are resolved against.
	// Defaults to the input file's directory.
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			CastShadows:    true,
			ReceiveShadows: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
