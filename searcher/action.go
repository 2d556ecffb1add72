package searcher

type outcome int

const (
	unexpanded outcome = iota
	deterministic
	stochastic
)

type action struct {
	index    int
	parent   *decision
	visits   int
	returns  float64
	q        float64
	kind     outcome
	child    *decision // deterministic only
	branches []*chance // stochastic only, at most one per seed
}

func newAction(parent *decision, index int) *action {
	return &action{
		index:  index,
		parent: parent,
		q:      OptimisticValue,
	}
}

func (a *action) addChildState(obs Observation, reward float64, terminal bool) *decision {
	if a.kind == stochastic || a.child != nil {
		panic("action already has an outcome")
	}

	a.kind = deterministic
	a.child = newDecision(a, obs, reward, terminal)
	return a.child
}

func (a *action) addChildBranch(seed uint64) *chance {
	if a.kind == deterministic {
		panic("deterministic action cannot branch")
	}
	if a.branch(seed) != nil {
		panic("seed already has a branch")
	}

	a.kind = stochastic
	branch := newChance(a, seed)
	a.branches = append(a.branches, branch)
	return branch
}

func (a *action) branch(seed uint64) *chance {
	for _, branch := range a.branches {
		if branch.seed == seed {
			return branch
		}
	}
	return nil
}

// find returns the expanded child whose observation matches obs, if any.
func (a *action) find(obs Observation) *decision {
	switch a.kind {
	case deterministic:
		if a.child.obs.similar(obs) {
			return a.child
		}
	case stochastic:
		for _, branch := range a.branches {
			if branch.child != nil && branch.child.obs.similar(obs) {
				return branch.child
			}
		}
	}
	return nil
}

func (a *action) update(ret float64) {
	a.returns += ret
	a.visits++
	a.q = a.returns / float64(a.visits)
}
