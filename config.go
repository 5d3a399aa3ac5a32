/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynasim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suparena/dynasim/advisor"
	"github.com/suparena/dynasim/capacity"
)

// Config aggregates the tunable parameters of a simulation: the cost model
// and the advisory thresholds. The zero value is not usable; start from
// DefaultConfig or LoadConfig.
type Config struct {
	Capacity  capacity.Config            `yaml:"capacity"`
	Optimizer advisor.OptimizerConfig    `yaml:"optimizer"`
	Advisor   advisor.IndexAdvisorConfig `yaml:"advisor"`
}

// DefaultConfig returns the default simulation parameters.
func DefaultConfig() Config {
	return Config{
		Capacity:  capacity.DefaultConfig(),
		Optimizer: advisor.DefaultOptimizerConfig(),
		Advisor:   advisor.DefaultIndexAdvisorConfig(),
	}
}

// LoadConfig reads a YAML config file over the defaults: sections the file
// omits keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
