package engine

import (
	"time"

	"planner/config"
	"planner/experiments/metrics"
	"planner/lostsales"
	"planner/searcher"

	"github.com/rs/zerolog/log"
)

// Engine plays lost sales episodes with MCTS and a baseline policy side by
// side on the same demand stream.
type Engine struct {
	Model          *lostsales.Model
	Search         config.Search
	Baseline       searcher.Policy
	Rollout        searcher.Policy
	StartupPeriods int
}

func LocalEngine(model *lostsales.Model, search config.Search, baseline, rollout searcher.Policy, startup int) *Engine {
	if model.Periods <= 0 {
		panic("episodes need a finite number of periods")
	}
	if baseline == nil {
		panic("need a baseline policy")
	}

	return &Engine{
		Model:          model,
		Search:         search,
		Baseline:       baseline,
		Rollout:        rollout,
		StartupPeriods: startup,
	}
}

// Run executes one episode and returns its metrics.
func (e *Engine) Run(seed uint64) (metrics.EpisodeMetric, []metrics.DecisionMetric, error) {
	startTime := time.Now()
	real := e.Model.NewTrajectory(seed)

	// Warm up under the baseline to reach a meaningful state
	for real.Period < e.StartupPeriods && !e.Model.Terminal(real) {
		if err := e.play(real, e.Baseline); err != nil {
			return metrics.EpisodeMetric{}, nil, err
		}
	}
	startupCost := real.Cost

	// Common random numbers from here on
	e.Model.Seed(real, seed+1)
	baseline := real.Copy(seed + 1)

	mcts := searcher.New(e.Model, e.Model.NewTrajectory(seed), e.observe(real), e.options(seed)...)

	var decisions []metrics.DecisionMetric
	reuses := 0
	last := -1
	for step := 0; !e.Model.Terminal(real) || !e.Model.Terminal(baseline); step++ {
		if !e.Model.Terminal(real) {
			obs := e.observe(real)
			if last >= 0 {
				mcts.Forward(last, obs)
			}

			metric, err := mcts.Search(real)
			if err != nil {
				return metrics.EpisodeMetric{}, decisions, err
			}
			if !metric.IsTreeReset {
				reuses++
			}

			target := mcts.Results(e.Search.Temperature)
			action := target.Greedy()
			log.Debug().Msgf("step %d: ordering %d with value %.2f after %d iterations", step, action, target.Value, metric.Iterations)

			if err := e.Model.ApplyAction(real, action); err != nil {
				return metrics.EpisodeMetric{}, decisions, err
			}
			if err := e.Model.AdvanceToDecision(real, 0); err != nil {
				return metrics.EpisodeMetric{}, decisions, err
			}

			decisions = append(decisions, metrics.DecisionMetric{
				Step:         step,
				Action:       action,
				Value:        target.Value,
				SearchMetric: metric,
			})
			last = action
		}

		if !e.Model.Terminal(baseline) {
			if err := e.play(baseline, e.Baseline); err != nil {
				return metrics.EpisodeMetric{}, decisions, err
			}
		}
	}

	endTime := time.Now()
	return metrics.EpisodeMetric{
		Seed:         seed,
		Cost:         real.Cost - startupCost,
		BaselineCost: baseline.Cost - startupCost,
		Decisions:    len(decisions),
		TreeReuses:   reuses,
		StartTime:    startTime,
		EndTime:      endTime,
		Duration:     endTime.Sub(startTime),
	}, decisions, nil
}

func (e *Engine) play(traj *lostsales.Trajectory, policy searcher.Policy) error {
	action, err := policy.Action(e.observe(traj))
	if err != nil {
		return err
	}
	if err := e.Model.ApplyAction(traj, action); err != nil {
		return err
	}
	return e.Model.AdvanceToDecision(traj, 0)
}

func (e *Engine) observe(traj *lostsales.Trajectory) searcher.Observation {
	return searcher.Observation{
		Features: e.Model.Features(traj),
		Mask:     e.Model.Mask(traj),
	}
}

func (e *Engine) options(seed uint64) []searcher.Option {
	return []searcher.Option{
		searcher.WithIterations(e.Search.Iterations),
		searcher.WithChanceNodes(e.Search.ChanceNodes),
		searcher.WithExploration(e.Search.Exploration),
		searcher.WithDiscount(e.Search.Discount),
		searcher.WithHorizon(e.Search.Horizon),
		searcher.WithSeed(e.Search.Seed + seed),
		searcher.WithRolloutPolicy(e.Rollout),
		searcher.WithMetrics(),
	}
}
