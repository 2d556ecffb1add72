package config

import (
	"fmt"
	"os"

	"planner/meta"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Search     Search     `yaml:"search"`
	Model      Model      `yaml:"model"`
	Experiment Experiment `yaml:"experiment"`
}

type Search struct {
	Iterations  int     `yaml:"iterations"`
	ChanceNodes int     `yaml:"chance_nodes"`
	Exploration float64 `yaml:"exploration"`
	Discount    float64 `yaml:"discount"`
	Horizon     int     `yaml:"horizon"`
	Temperature float64 `yaml:"temperature"`
	Seed        uint64  `yaml:"seed"`
}

type Model struct {
	Leadtime     int     `yaml:"leadtime"`
	HoldingCost  float64 `yaml:"holding_cost"`
	LostSaleCost float64 `yaml:"lost_sale_cost"`
	DemandMean   float64 `yaml:"demand_mean"`
	MaxOrder     int     `yaml:"max_order"`
	MaxPosition  int     `yaml:"max_position"`
	Periods      int     `yaml:"periods"`
	BaseStock    int     `yaml:"base_stock"` // Level of the baseline and rollout policy
}

type Experiment struct {
	Episodes       int    `yaml:"episodes"`
	StartupPeriods int    `yaml:"startup_periods"`
	OutputDir      string `yaml:"output_dir"`
	LogLevel       string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Search: Search{
			Iterations:  meta.ITERATIONS,
			ChanceNodes: meta.CHANCE_NODES,
			Exploration: meta.EXPLORATION,
			Discount:    meta.DISCOUNT,
			Horizon:     meta.HORIZON,
			Temperature: meta.TEMPERATURE,
			Seed:        meta.SEED,
		},
		Model: Model{
			Leadtime:     2,
			HoldingCost:  1,
			LostSaleCost: 9,
			DemandMean:   5,
			MaxOrder:     15,
			MaxPosition:  30,
			Periods:      meta.MAX_PERIODS,
			BaseStock:    17,
		},
		Experiment: Experiment{
			Episodes:       meta.EPISODES,
			StartupPeriods: 10,
			OutputDir:      "experiments",
			LogLevel:       "info",
		},
	}
}

// Load reads a YAML file on top of the defaults. Missing keys keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Search.Iterations <= 0 {
		return fmt.Errorf("search.iterations must be positive, got %d", c.Search.Iterations)
	}
	if c.Search.ChanceNodes <= 0 {
		return fmt.Errorf("search.chance_nodes must be positive, got %d", c.Search.ChanceNodes)
	}
	if c.Search.Discount < 0 || c.Search.Discount > 1 {
		return fmt.Errorf("search.discount must be in [0, 1], got %f", c.Search.Discount)
	}
	if c.Experiment.Episodes <= 0 {
		return fmt.Errorf("experiment.episodes must be positive, got %d", c.Experiment.Episodes)
	}
	return nil
}
