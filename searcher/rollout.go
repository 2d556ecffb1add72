package searcher

import "golang.org/x/exp/rand"

// rollout plays policy on traj for at most horizon decisions and reports
// whether it stopped at a terminal state.
func rollout[T any](engine Engine[T], traj T, policy Policy, horizon int) (bool, error) {
	limit := engine.DecisionSteps(traj) + horizon
	for engine.DecisionSteps(traj) < limit {
		if engine.Terminal(traj) {
			return true, nil
		}

		move, err := policy.Action(observe(engine, traj))
		if err != nil {
			return false, err
		}
		if err := engine.ApplyAction(traj, move); err != nil {
			return false, err
		}
		if err := engine.AdvanceToDecision(traj, limit-engine.DecisionSteps(traj)); err != nil {
			return false, err
		}
	}
	return engine.Terminal(traj), nil
}

// UniformPolicy picks uniformly among allowed actions.
type UniformPolicy struct {
	rng *rand.Rand
}

func NewUniformPolicy(seed uint64) *UniformPolicy {
	return &UniformPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *UniformPolicy) Action(obs Observation) (int, error) {
	allowed := obs.Allowed()
	if len(allowed) == 0 {
		return 0, ErrNoAllowedActions
	}
	return allowed[p.rng.Intn(len(allowed))], nil
}
