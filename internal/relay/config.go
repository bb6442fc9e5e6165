package relay

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config controls the relay server.
type Config struct {
	Listen   string  `yaml:"listen"`
	QueueCap int     `yaml:"queueCap"`
	RPS      float64 `yaml:"rps"`
	Burst    int     `yaml:"burst"`
	LogLevel string  `yaml:"logLevel"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		Listen:   ":8080",
		QueueCap: 1000,
		RPS:      5,
		Burst:    20,
		LogLevel: "info",
	}
}

// LoadConfig reads the first usable YAML file among path and the default
// candidates, merges it over DefaultConfig, and applies env overrides. A
// missing or unparseable file falls through to the next candidate.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()

	candidates := make([]string, 0, 2)
	if path != "" {
		candidates = append(candidates, path)
	} else {
		candidates = append(candidates, "relay.yaml", "configs/relay.yaml")
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		merge(&cfg, parsed)
		break
	}

	applyEnvOverrides(&cfg)
	return cfg
}

func merge(dst *Config, src Config) {
	if src.Listen != "" {
		dst.Listen = src.Listen
	}
	if src.QueueCap != 0 {
		dst.QueueCap = src.QueueCap
	}
	if src.RPS != 0 {
		dst.RPS = src.RPS
	}
	if src.Burst != 0 {
		dst.Burst = src.Burst
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}

func applyEnvOverrides(cfg *Config) {
	if listen := strings.TrimSpace(os.Getenv("PARLEY_RELAY_LISTEN")); listen != "" {
		cfg.Listen = listen
	}
	if level := strings.TrimSpace(os.Getenv("PARLEY_RELAY_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}
}
