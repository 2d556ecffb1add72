package lostsales

import (
	"planner/searcher"
)

// BaseStock orders up to a target inventory position, reading on hand and
// pipeline from the observation features.
type BaseStock struct {
	Level int
}

func (p BaseStock) Action(obs searcher.Observation) (int, error) {
	position := 0.0
	for _, f := range obs.Features {
		position += f
	}

	q := min(max(p.Level-int(position), 0), len(obs.Mask)-1)
	for ; q >= 0; q-- {
		if obs.Mask[q] {
			return q, nil
		}
	}
	return 0, searcher.ErrNoAllowedActions
}

// Random orders a uniformly random allowed quantity.
func Random(seed uint64) searcher.Policy {
	return searcher.NewUniformPolicy(seed)
}
