package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents an rrsim config file. Every field is optional; explicit
// command-line flags take precedence over the values here.
// All fields must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Quantum         *int64 `yaml:"quantum"`
	LogLevel        string `yaml:"log_level"`
	Workload        string `yaml:"workload"`
	Format          string `yaml:"format"`
	Trace           string `yaml:"trace"`
	Results         string `yaml:"results"`
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// loadConfig parses a config file with strict field checking so typos
// surface as errors.
func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config YAML %s: %w", path, err)
	}
	return cfg, nil
}
