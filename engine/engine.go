package engine

import "planner/experiments/metrics"

type Runner interface {
	// Run plays one episode till the model's last period
	Run(seed uint64) (episodeMetric metrics.EpisodeMetric, decisionMetrics []metrics.DecisionMetric, err error)
}

var _ Runner = (*Engine)(nil)
