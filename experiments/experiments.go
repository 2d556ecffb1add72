package experiments

import (
	"fmt"

	"planner/config"
	"planner/engine"
	"planner/experiments/metrics"
	"planner/lostsales"

	"github.com/rs/zerolog/log"
)

// RunComparison plays the configured number of episodes with MCTS against the
// base stock baseline and stores the records as CSV. Returns the output
// directory.
func RunComparison(cfg config.Config) (string, error) {
	model := NewModel(cfg.Model)
	if err := model.Validate(); err != nil {
		return "", err
	}

	baseline := lostsales.BaseStock{Level: cfg.Model.BaseStock}
	e := engine.LocalEngine(model, cfg.Search, baseline, baseline, cfg.Experiment.StartupPeriods)
	agent := metrics.AgentConfig{
		ID:          1,
		Iterations:  cfg.Search.Iterations,
		ChanceNodes: cfg.Search.ChanceNodes,
		Exploration: cfg.Search.Exploration,
		Discount:    cfg.Search.Discount,
		Horizon:     cfg.Search.Horizon,
		Temperature: cfg.Search.Temperature,
	}

	episodes, decisions, err := runEpisodes(e, agent.ID, cfg.Experiment.Episodes)
	if err != nil {
		return "", err
	}

	writer, err := metrics.NewWriter(cfg.Experiment.OutputDir, "comparison")
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs([]metrics.AgentConfig{agent}); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteEpisodeRecords(episodes); err != nil {
		return "", fmt.Errorf("failed to write episode records: %w", err)
	}
	log.Info().Msg("stored episode records")

	if err := writer.WriteDecisionRecords(decisions); err != nil {
		return "", fmt.Errorf("failed to write decision records: %w", err)
	}
	log.Info().Msg("stored decision records")

	return writer.Dir(), nil
}

func runEpisodes(runner engine.Runner, agent, n int) ([]metrics.EpisodeRecord, []metrics.DecisionRecord, error) {
	episodes := []metrics.EpisodeRecord{}
	decisions := []metrics.DecisionRecord{}
	mctsTotal, baselineTotal := 0.0, 0.0

	log.Info().Msgf("starting comparison experiment with %d episodes...", n)

	for i := 0; i < n; i++ {
		log.Info().Msgf("starting episode %d of %d...", i+1, n)

		episode, decisionMetrics, err := runner.Run(uint64(i))
		if err != nil {
			return nil, nil, fmt.Errorf("episode %d: %w", i+1, err)
		}
		episodes = append(episodes, metrics.EpisodeRecord{
			ID:            i + 1,
			Agent:         agent,
			EpisodeMetric: episode,
		})
		for _, dm := range decisionMetrics {
			decisions = append(decisions, metrics.DecisionRecord{
				Episode:        i + 1,
				DecisionMetric: dm,
			})
		}
		mctsTotal += episode.Cost
		baselineTotal += episode.BaselineCost

		log.Info().Msgf("completed episode %d of %d with cost %.1f (baseline %.1f, %d tree reuses)",
			i+1, n, episode.Cost, episode.BaselineCost, episode.TreeReuses)
	}

	log.Info().Msgf("completed comparison: average cost %.2f, baseline %.2f", mctsTotal/float64(n), baselineTotal/float64(n))
	return episodes, decisions, nil
}

func NewModel(cfg config.Model) *lostsales.Model {
	return &lostsales.Model{
		Leadtime:     cfg.Leadtime,
		HoldingCost:  cfg.HoldingCost,
		LostSaleCost: cfg.LostSaleCost,
		DemandMean:   cfg.DemandMean,
		MaxOrder:     cfg.MaxOrder,
		MaxPosition:  cfg.MaxPosition,
		Periods:      cfg.Periods,
	}
}
