package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the demo's configuration.
type Config struct {
	Capacity int           `yaml:"capacity"`
	TTL      time.Duration `yaml:"ttl"`
	Snapshot struct {
		Name   string `yaml:"name"`
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"`
	} `yaml:"snapshot"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.Capacity = 2
	cfg.TTL = 2 * time.Second
	cfg.Snapshot.Name = "gocache-demo"
	cfg.Snapshot.Format = "json"
	return cfg
}

// loadConfig returns the defaults overlaid with the YAML file at path, if
// path is not empty.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
