package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config tunes the demo's synthetic dataset and the simulated latency of
// its datastore.
type Config struct {
	Demo struct {
		RandomEntities int     `yaml:"random_entities"`
		MaxResults     int     `yaml:"max_results"`
		MaxDistanceM   float64 `yaml:"max_distance_m"`
	} `yaml:"demo"`
	Store struct {
		SimulatedLatencyMs int `yaml:"simulated_latency_ms"`
	} `yaml:"store"`
}

func defaultConfig() Config {
	var c Config
	c.Demo.RandomEntities = 2000
	c.Demo.MaxResults = 5
	c.Demo.MaxDistanceM = 1000
	c.Store.SimulatedLatencyMs = 15
	return c
}

// loadConfig reads config.yaml if present, falling back to
// config.yaml.example and finally to built-in defaults.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		data, err = os.ReadFile("config.yaml.example")
		if err != nil {
			return cfg, nil
		}
		fmt.Println("Using config.yaml.example (copy to config.yaml for custom settings)")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
