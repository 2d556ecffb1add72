package main

import (
	"flag"
	"os"

	"planner/config"
	"planner/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("config", "", "Path to a YAML config file")
	episodes := flag.Int("episodes", 0, "Number of episodes (overrides config)")
	iterations := flag.Int("iterations", 0, "Search iterations per decision (overrides config)")
	chanceNodes := flag.Int("chance-nodes", 0, "Max sampled outcomes per action (overrides config)")
	output := flag.String("output", "", "Directory for experiment records (overrides config)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if *path != "" {
		loaded, err := config.Load(*path)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}
	if *episodes > 0 {
		cfg.Experiment.Episodes = *episodes
	}
	if *iterations > 0 {
		cfg.Search.Iterations = *iterations
	}
	if *chanceNodes > 0 {
		cfg.Search.ChanceNodes = *chanceNodes
	}
	if *output != "" {
		cfg.Experiment.OutputDir = *output
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	level, err := zerolog.ParseLevel(cfg.Experiment.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	dir, err := experiments.RunComparison(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("comparison failed")
	}
	log.Info().Msgf("records written to %s", dir)
}
