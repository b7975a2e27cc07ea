package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the rotext command.
type Config struct {
	// Addr is the HTTP listen address for serve.
	Addr string `yaml:"addr"`
	// TopK limits both keyword rankers; 0 uses their default.
	TopK int `yaml:"top_k"`
	// ExtraStopwords extend the embedded stopword lists.
	ExtraStopwords []string `yaml:"extra_stopwords"`
}

func defaultConfig() *Config {
	return &Config{Addr: ":8000"}
}

// loadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
