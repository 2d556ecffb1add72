package searcher

import (
	"planner/experiments/metrics"
	"planner/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *settings)

type settings struct {
	iterations  int
	chanceNodes int
	exploration float64
	discount    float64
	horizon     int
	seed        uint64
	policy      Policy
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(s *settings) {
		if iterations > 0 {
			s.iterations = iterations
		}
	}
}

func WithChanceNodes(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.chanceNodes = n
		}
	}
}

func WithExploration(c float64) Option {
	return func(s *settings) {
		if c >= 0 {
			s.exploration = c
		}
	}
}

func WithDiscount(gamma float64) Option {
	return func(s *settings) {
		if gamma >= 0 && gamma <= 1 {
			s.discount = gamma
		}
	}
}

func WithHorizon(depth int) Option {
	return func(s *settings) {
		if depth >= 0 {
			s.horizon = depth
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

func WithRolloutPolicy(policy Policy) Option {
	return func(s *settings) {
		if policy != nil {
			s.policy = policy
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

// MCTS searches over an Engine with chance nodes for stochastic transitions.
// The tree survives between decisions through Forward. Not safe for
// concurrent use: searches mutate one scratch trajectory.
type MCTS[T any] struct {
	settings
	engine  Engine[T]
	scratch T
	rng     *rand.Rand
	root    *decision
	rootObs Observation
	offset  float64 // Cumulative return already accounted for above the root
}

func New[T any](engine Engine[T], scratch T, rootObs Observation, options ...Option) *MCTS[T] {
	s := settings{ // Default values
		iterations:  meta.ITERATIONS,
		chanceNodes: meta.CHANCE_NODES,
		exploration: meta.EXPLORATION,
		discount:    meta.DISCOUNT,
		horizon:     meta.HORIZON,
		seed:        meta.SEED,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	if s.iterations <= 0 {
		panic("Must specify search iterations")
	}

	rng := rand.New(rand.NewSource(s.seed))
	if s.policy == nil {
		s.policy = &UniformPolicy{rng: rng}
	}

	return &MCTS[T]{
		settings: s,
		engine:   engine,
		scratch:  scratch,
		rng:      rng,
		rootObs:  rootObs.clone(),
	}
}

// Search runs the iteration budget from the real trajectory. Engine errors
// are returned as is. Panics if the root is terminal.
func (m *MCTS[T]) Search(real T) (metrics.SearchMetric, error) {
	m.metrics.Start(m.iterations, m.chanceNodes, m.horizon)
	m.metrics.SetTreeReset(m.root == nil)

	for i := 0; i < m.iterations; i++ {
		if err := m.simulate(real); err != nil {
			return m.metrics.Complete(), err
		}
		m.metrics.AddIteration()
	}
	return m.metrics.Complete(), nil
}

func (m *MCTS[T]) initRoot(real T) *decision {
	if m.root == nil {
		reward := -(m.engine.CumulativeCost(real) - m.offset)
		m.root = newDecision(nil, m.rootObs, reward, m.engine.Terminal(real)).addChildActions()
	}
	if m.root.terminal {
		panic("cannot search from a terminal state")
	}
	if len(m.root.actions) == 0 {
		panic("cannot search from a state without allowed actions")
	}
	return m.root
}

func (m *MCTS[T]) simulate(real T) error {
	state := m.initRoot(real)

	// The scratch trajectory is reused, never reallocated
	if err := m.engine.Reset(m.scratch, real); err != nil {
		return err
	}
	last := m.engine.CumulativeCost(m.scratch)

	for !state.terminal {
		edge := state.selects(m.exploration)
		if err := m.engine.ApplyAction(m.scratch, edge.index); err != nil {
			return err
		}

		child, expanded, err := m.selectOrExpand(edge, last)
		if err != nil {
			return err
		}
		state = child
		if expanded {
			break
		}
		last = m.engine.CumulativeCost(m.scratch)
	}

	if !state.evaluated {
		state.addChildActions()
		if err := m.evaluate(state); err != nil {
			return err
		}
	}

	backup(state, m.discount)
	return nil
}

// selectOrExpand moves the scratch trajectory through edge. It descends into a
// known outcome, or expands a new one when the action has room for it.
func (m *MCTS[T]) selectOrExpand(edge *action, last float64) (*decision, bool, error) {
	if edge.kind == unexpanded && !m.engine.AwaitingEvent(m.scratch) {
		edge.kind = deterministic
	}

	if edge.kind == deterministic {
		if edge.child != nil {
			return edge.child, false, nil
		}
		obs, reward, terminal := m.leaf(last)
		child := edge.addChildState(obs, reward, terminal)
		return child, true, m.expand(child)
	}

	// Bounded widening: replay a known outcome once the action is full
	if len(edge.branches) >= m.chanceNodes {
		branch := edge.branches[m.rng.Intn(len(edge.branches))]
		m.engine.Seed(m.scratch, branch.seed)
		if err := m.engine.AdvanceToDecision(m.scratch, 0); err != nil {
			return nil, false, err
		}
		return branch.child, false, nil
	}

	seed := uint64(m.rng.Intn(MaxSeed + 1))
	m.engine.Seed(m.scratch, seed)
	if err := m.engine.AdvanceToDecision(m.scratch, 0); err != nil {
		return nil, false, err
	}
	if branch := edge.branch(seed); branch != nil {
		return branch.child, false, nil
	}

	obs, reward, terminal := m.leaf(last)
	child := edge.addChildBranch(seed).addChildState(obs, reward, terminal)
	return child, true, m.expand(child)
}

func (m *MCTS[T]) leaf(last float64) (Observation, float64, bool) {
	obs := observe(m.engine, m.scratch)
	reward := -(m.engine.CumulativeCost(m.scratch) - last)
	return obs, reward, m.engine.Terminal(m.scratch)
}

func (m *MCTS[T]) expand(child *decision) error {
	child.addChildActions()
	m.metrics.AddExpansion()
	return m.evaluate(child)
}

func (m *MCTS[T]) evaluate(state *decision) error {
	full, err := evaluate(state, m.engine, m.scratch, m.policy, m.horizon)
	if err != nil {
		return err
	}
	if full {
		m.metrics.AddFullRollout()
	}
	return nil
}

func backup(leaf *decision, discount float64) {
	state := leaf
	ret := state.value
	for state.parent != nil {
		ret = state.reward + discount*ret
		edge := state.parent
		edge.update(ret)
		state = edge.parent
		state.update()
	}
}

// Forward moves the root along the committed action. The matching subtree is
// kept when next is within Tolerance of a stored outcome, otherwise the tree
// is dropped and the next search starts from next.
func (m *MCTS[T]) Forward(index int, next Observation) {
	if m.root == nil {
		m.rootObs = next.clone()
		return
	}

	m.offset += -m.root.reward

	var child *decision
	if edge := m.root.action(index); edge != nil {
		child = edge.find(next)
	}
	if child == nil {
		log.Debug().Msgf("no stored outcome of action %d matches the observation, resetting tree", index)
		m.root = nil
		m.rootObs = next.clone()
		return
	}

	log.Debug().Msgf("reusing subtree of action %d with %d visits", index, child.visits)
	child.parent = nil
	m.root = child.addChildActions()
}

func (m *MCTS[T]) RootVisits() int {
	if m.root == nil {
		return 0
	}
	return m.root.visits
}

func (m *MCTS[T]) Offset() float64 {
	return m.offset
}
