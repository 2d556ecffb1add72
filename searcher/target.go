package searcher

import (
	"math"

	"planner/utils"

	"gonum.org/v1/gonum/floats"
)

// Target is the search output at the root: a distribution over the allowed
// actions (in mask order) and a value estimate.
type Target struct {
	Actions []int
	Policy  []float64
	Value   float64
}

// Greedy returns the action with the highest probability, first one on ties.
func (t Target) Greedy() int {
	i := utils.ArgMax(t.Policy)
	if i < 0 {
		panic("target has no actions")
	}
	return t.Actions[i]
}

// Results reads the policy and value targets off the root's visit counts.
// Without any recorded visits it falls back to a uniform policy.
func (m *MCTS[T]) Results(temperature float64) Target {
	if m.root == nil {
		return uniform(m.rootObs.Allowed())
	}

	actions := m.root.actions
	counts := make([]float64, len(actions))
	q := make([]float64, len(actions))
	indices := make([]int, len(actions))
	for i, a := range actions {
		counts[i] = float64(a.visits)
		q[i] = a.q
		indices[i] = a.index
	}

	total := floats.Sum(counts)
	if total == 0 {
		// Unvisited actions hold the optimistic value, which is no estimate
		return uniform(m.root.allowed)
	}

	freq := make([]float64, len(counts))
	floats.ScaleTo(freq, 1/total, counts)
	return Target{
		Actions: indices,
		Policy:  normalize(counts, temperature),
		Value:   floats.Dot(freq, q),
	}
}

func uniform(allowed []int) Target {
	policy := make([]float64, len(allowed))
	for i := range policy {
		policy[i] = 1 / float64(len(allowed))
	}
	return Target{Actions: append([]int(nil), allowed...), Policy: policy, Value: 0}
}

// normalize computes x[i]^t / sum(x^t), scaling by max(x) first to keep the
// powers in range.
func normalize(x []float64, temperature float64) []float64 {
	p := make([]float64, len(x))
	floats.ScaleTo(p, 1/floats.Max(x), x)
	for i := range p {
		p[i] = math.Pow(p[i], temperature)
	}
	floats.Scale(1/floats.Sum(p), p)
	for i := range p {
		p[i] = math.Abs(p[i])
	}
	return p
}
