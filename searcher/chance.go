package searcher

// chance is one sampled outcome of a stochastic action, replayed by reseeding
// the engine with its seed.
type chance struct {
	seed   uint64
	parent *action
	child  *decision
}

func newChance(parent *action, seed uint64) *chance {
	return &chance{
		seed:   seed,
		parent: parent,
	}
}

// addChildState creates the outcome state. Its parent link skips the chance
// node and points at the owning action, which is what backup walks through.
func (c *chance) addChildState(obs Observation, reward float64, terminal bool) *decision {
	if c.child != nil {
		panic("chance node already has a child")
	}

	c.child = newDecision(c.parent, obs, reward, terminal)
	return c.child
}
