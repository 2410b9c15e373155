package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lossq/lossq/sim"
)

// RunConfig is the optional YAML config file. Absent keys leave the flag defaults in place.
type RunConfig struct {
	ServiceRate *float64 `yaml:"service_rate"`
	Horizon     *float64 `yaml:"horizon"`
	Seed        *int64   `yaml:"seed"`
}

// loadRunConfig parses a config file with strict field checking so typos are errors.
func loadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// an empty or comments-only file sets no keys
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// resolveConfig merges the config file (if any) under the command's flags:
// a flag set explicitly on the command line overrides the file.
func resolveConfig(c *cobra.Command) (sim.Config, int64, error) {
	cfg := sim.Config{Horizon: horizon, ServiceRate: serviceRate}
	s := seed
	if configPath == "" {
		return cfg, s, cfg.Validate()
	}

	file, err := loadRunConfig(configPath)
	if err != nil {
		return cfg, s, err
	}
	if file.Horizon != nil && !c.Flags().Changed("horizon") {
		cfg.Horizon = *file.Horizon
	}
	if file.ServiceRate != nil && !c.Flags().Changed("service-rate") {
		cfg.ServiceRate = *file.ServiceRate
	}
	if file.Seed != nil && !c.Flags().Changed("seed") {
		s = *file.Seed
	}
	return cfg, s, cfg.Validate()
}
