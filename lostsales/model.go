package lostsales

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

var (
	ErrInvalidAction = errors.New("invalid order quantity")
	ErrAwaitingEvent = errors.New("trajectory is awaiting a demand event")
	ErrInvalidModel  = errors.New("invalid lost sales model")
)

// Model is a single item lost sales inventory system. Each period the agent
// orders a quantity that arrives after Leadtime periods, then a geometric
// demand is drawn. Unmet demand is lost.
type Model struct {
	Leadtime     int     // Periods between ordering and receiving
	HoldingCost  float64 // Cost per unit left on hand at the end of a period
	LostSaleCost float64 // Cost per unit of unmet demand
	DemandMean   float64 // Mean of the geometric demand
	MaxOrder     int     // Largest order quantity, actions are 0..MaxOrder
	MaxPosition  int     // Cap on inventory position after ordering
	Periods      int     // Episode length, 0 for endless
}

func (m *Model) Validate() error {
	switch {
	case m.Leadtime < 0:
		return fmt.Errorf("%w: negative leadtime %d", ErrInvalidModel, m.Leadtime)
	case m.HoldingCost < 0 || m.LostSaleCost < 0:
		return fmt.Errorf("%w: negative costs", ErrInvalidModel)
	case m.DemandMean < 0:
		return fmt.Errorf("%w: negative demand mean %f", ErrInvalidModel, m.DemandMean)
	case m.MaxOrder < 0 || m.MaxPosition < 0:
		return fmt.Errorf("%w: negative order bounds", ErrInvalidModel)
	case m.Periods < 0:
		return fmt.Errorf("%w: negative periods %d", ErrInvalidModel, m.Periods)
	}
	return nil
}

// NumActions is the size of the discrete action space.
func (m *Model) NumActions() int {
	return m.MaxOrder + 1
}

// Trajectory is the dynamic state of one episode.
type Trajectory struct {
	OnHand    int     // Units on hand
	Pipeline  []int   // Outstanding orders, Pipeline[0] arrives next
	Cost      float64 // Cost accumulated since the start of the episode
	Period    int     // Demand events processed
	Decisions int     // Orders placed
	pending   bool
	rng       *rand.Rand
}

func (m *Model) NewTrajectory(seed uint64) *Trajectory {
	return &Trajectory{
		Pipeline: make([]int, m.Leadtime, m.Leadtime+1),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Copy returns an independent trajectory with its own random source.
func (t *Trajectory) Copy(seed uint64) *Trajectory {
	c := &Trajectory{rng: rand.New(rand.NewSource(seed))}
	c.copyFrom(t)
	return c
}

func (t *Trajectory) copyFrom(source *Trajectory) {
	t.OnHand = source.OnHand
	t.Pipeline = append(t.Pipeline[:0], source.Pipeline...)
	t.Cost = source.Cost
	t.Period = source.Period
	t.Decisions = source.Decisions
	t.pending = source.pending
}

func (t *Trajectory) position() int {
	position := t.OnHand
	for _, q := range t.Pipeline {
		position += q
	}
	return position
}

// Reset copies the source state. The random source of traj is kept: callers
// reseed it before replaying events.
func (m *Model) Reset(traj, source *Trajectory) error {
	traj.copyFrom(source)
	return nil
}

func (m *Model) ApplyAction(traj *Trajectory, action int) error {
	if traj.pending {
		return ErrAwaitingEvent
	}
	if action < 0 || action > m.MaxOrder || !m.allowed(traj, action) {
		return fmt.Errorf("%w: %d", ErrInvalidAction, action)
	}

	traj.Pipeline = append(traj.Pipeline, action)
	traj.Decisions++
	traj.pending = true
	return nil
}

// AdvanceToDecision draws the pending demand. Every order is followed by
// exactly one event, so maxSteps never cuts it short.
func (m *Model) AdvanceToDecision(traj *Trajectory, maxSteps int) error {
	if !traj.pending {
		return nil
	}
	m.incorporate(traj, m.demand(traj.rng))
	return nil
}

func (m *Model) incorporate(traj *Trajectory, demand int) {
	arriving := traj.Pipeline[0]
	copy(traj.Pipeline, traj.Pipeline[1:])
	traj.Pipeline = traj.Pipeline[:len(traj.Pipeline)-1]

	traj.OnHand += arriving
	sold := min(traj.OnHand, demand)
	lost := demand - sold
	traj.OnHand -= sold

	traj.Cost += m.HoldingCost*float64(traj.OnHand) + m.LostSaleCost*float64(lost)
	traj.Period++
	traj.pending = false
}

// demand draws a geometric variate with the model mean by inverting its CDF.
func (m *Model) demand(rng *rand.Rand) int {
	if m.DemandMean <= 0 {
		return 0
	}

	q := m.DemandMean / (1 + m.DemandMean) // P(D > k | D >= k)
	u := rng.Float64()
	if u <= 0 {
		u = math.SmallestNonzeroFloat64
	}
	return int(math.Floor(math.Log(u) / math.Log(q)))
}

func (m *Model) allowed(traj *Trajectory, q int) bool {
	return q == 0 || traj.position()+q <= m.MaxPosition
}

func (m *Model) AwaitingEvent(traj *Trajectory) bool {
	return traj.pending
}

func (m *Model) Terminal(traj *Trajectory) bool {
	return m.Periods > 0 && traj.Period >= m.Periods
}

// Features are the on hand inventory followed by the pipeline.
func (m *Model) Features(traj *Trajectory) []float64 {
	features := make([]float64, 0, 1+len(traj.Pipeline))
	features = append(features, float64(traj.OnHand))
	for _, q := range traj.Pipeline {
		features = append(features, float64(q))
	}
	return features
}

func (m *Model) Mask(traj *Trajectory) []bool {
	mask := make([]bool, m.NumActions())
	for q := range mask {
		mask[q] = m.allowed(traj, q)
	}
	return mask
}

func (m *Model) CumulativeCost(traj *Trajectory) float64 {
	return traj.Cost
}

func (m *Model) Seed(traj *Trajectory, seed uint64) {
	traj.rng.Seed(seed)
}

func (m *Model) DecisionSteps(traj *Trajectory) int {
	return traj.Decisions
}
