package searcher

import (
	"math"

	"planner/utils"
)

type decision struct {
	parent    *action // nil at the root
	obs       Observation
	allowed   []int
	reward    float64 // Reward received on arrival
	terminal  bool
	visits    int
	value     float64
	evaluated bool
	actions   []*action
}

func newDecision(parent *action, obs Observation, reward float64, terminal bool) *decision {
	obs = obs.clone()
	return &decision{
		parent:   parent,
		obs:      obs,
		allowed:  obs.Allowed(),
		reward:   reward,
		terminal: terminal,
	}
}

// addChildActions creates one action per allowed index. Terminal nodes and
// nodes that already hold their actions are left untouched.
func (d *decision) addChildActions() *decision {
	if d.terminal || len(d.actions) > 0 {
		return d
	}

	actions := make([]*action, len(d.allowed))
	for i, index := range d.allowed {
		actions[i] = newAction(d, index)
	}
	d.actions = actions
	return d
}

// selects returns the action with the highest UCT score. Ties go to the
// first action in mask order.
func (d *decision) selects(exploration float64) *action {
	if len(d.actions) == 0 {
		panic("node has no actions")
	}

	policy := newUCT(exploration, d.visits)
	maxAction := d.actions[0]
	maxScore := math.Inf(-1)
	for _, a := range d.actions {
		if score := policy.evaluate(a.q, a.visits); score > maxScore {
			maxScore = score
			maxAction = a
		}
	}
	return maxAction
}

func (d *decision) action(index int) *action {
	i := utils.FindIndex(d.allowed, index)
	if i < 0 || i >= len(d.actions) {
		return nil
	}
	return d.actions[i]
}

func (d *decision) update() {
	d.visits++
}

// evaluate bootstraps the node value with a rollout from traj, which must be
// positioned at the node. Reports whether the rollout reached a terminal state.
func evaluate[T any](d *decision, engine Engine[T], traj T, policy Policy, horizon int) (bool, error) {
	if d.terminal {
		d.value = 0
		d.evaluated = true
		return true, nil
	}

	start := engine.CumulativeCost(traj)
	full, err := rollout(engine, traj, policy, horizon)
	if err != nil {
		return false, err
	}

	// Engine reports costs, the tree works with rewards
	d.value = -(engine.CumulativeCost(traj) - start)
	d.evaluated = true
	return full, nil
}
