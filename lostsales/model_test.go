package lostsales

import (
	"testing"

	"planner/searcher"

	"github.com/stretchr/testify/require"
)

func newModel() *Model {
	return &Model{
		Leadtime:     2,
		HoldingCost:  1,
		LostSaleCost: 9,
		DemandMean:   5,
		MaxOrder:     10,
		MaxPosition:  20,
		Periods:      5,
	}
}

// The model is a search engine over its trajectories.
var _ searcher.Engine[*Trajectory] = (*Model)(nil)

func TestValidate(t *testing.T) {
	require.NoError(t, newModel().Validate())

	m := newModel()
	m.Leadtime = -1
	require.ErrorIs(t, m.Validate(), ErrInvalidModel)

	m = newModel()
	m.DemandMean = -2
	require.ErrorIs(t, m.Validate(), ErrInvalidModel)
}

func TestApplyAction(t *testing.T) {
	t.Run("placing an order", func(t *testing.T) {
		m := newModel()
		traj := m.NewTrajectory(1)

		err := m.ApplyAction(traj, 4)

		require.NoError(t, err)
		require.Equal(t, []int{0, 0, 4}, traj.Pipeline)
		require.True(t, m.AwaitingEvent(traj), "Demand should follow the order")
		require.Equal(t, 1, m.DecisionSteps(traj))
	})

	t.Run("rejecting an order while awaiting demand", func(t *testing.T) {
		m := newModel()
		traj := m.NewTrajectory(1)
		require.NoError(t, m.ApplyAction(traj, 1))

		require.ErrorIs(t, m.ApplyAction(traj, 1), ErrAwaitingEvent)
	})

	t.Run("rejecting masked orders", func(t *testing.T) {
		m := newModel()
		traj := m.NewTrajectory(1)
		traj.OnHand = 15

		require.ErrorIs(t, m.ApplyAction(traj, 6), ErrInvalidAction)
		require.ErrorIs(t, m.ApplyAction(traj, 11), ErrInvalidAction)
		require.ErrorIs(t, m.ApplyAction(traj, -1), ErrInvalidAction)
		require.NoError(t, m.ApplyAction(traj, 5))
	})
}

func TestIncorporate(t *testing.T) {
	t.Run("receiving and selling", func(t *testing.T) {
		m := newModel()
		traj := &Trajectory{OnHand: 3, Pipeline: []int{2, 0, 5}}

		m.incorporate(traj, 4)

		require.Equal(t, 1, traj.OnHand, "Should sell 4 of 5 units")
		require.Equal(t, []int{0, 5}, traj.Pipeline)
		require.Equal(t, 1.0, traj.Cost, "Should pay holding on one unit")
		require.Equal(t, 1, traj.Period)
	})

	t.Run("losing unmet demand", func(t *testing.T) {
		m := newModel()
		traj := &Trajectory{OnHand: 1, Pipeline: []int{0, 0, 0}}

		m.incorporate(traj, 3)

		require.Zero(t, traj.OnHand)
		require.Equal(t, 18.0, traj.Cost, "Should pay for two lost sales")
	})
}

func TestSeedReplay(t *testing.T) {
	m := newModel()
	m.Periods = 0
	source := m.NewTrajectory(1)
	source.OnHand = 10

	run := func(seed uint64) []float64 {
		traj := m.NewTrajectory(99)
		require.NoError(t, m.Reset(traj, source))
		require.NoError(t, m.ApplyAction(traj, 3))
		m.Seed(traj, seed)
		require.NoError(t, m.AdvanceToDecision(traj, 0))
		return append(m.Features(traj), m.CumulativeCost(traj))
	}

	require.Equal(t, run(7), run(7), "Same seed should replay the same outcome")
	require.Equal(t, 10, source.OnHand, "Reset must not alias the source")
	require.Equal(t, []int{0, 0}, source.Pipeline)
}

func TestDemand(t *testing.T) {
	m := newModel()
	traj := m.NewTrajectory(3)

	total := 0
	const n = 20000
	for i := 0; i < n; i++ {
		d := m.demand(traj.rng)
		require.GreaterOrEqual(t, d, 0)
		total += d
	}
	require.InDelta(t, 5.0, float64(total)/n, 0.25, "Sample mean should approach the demand mean")

	m.DemandMean = 0
	require.Zero(t, m.demand(traj.rng))
}

func TestMaskAndFeatures(t *testing.T) {
	m := newModel()
	traj := &Trajectory{OnHand: 12, Pipeline: []int{3, 2}}

	mask := m.Mask(traj)

	require.Len(t, mask, 11)
	for q, ok := range mask {
		require.Equal(t, 17+q <= 20, ok, "quantity %d", q)
	}
	require.Equal(t, []float64{12, 3, 2}, m.Features(traj))
}

func TestTerminal(t *testing.T) {
	m := newModel()
	traj := m.NewTrajectory(1)

	for i := 0; i < 5; i++ {
		require.False(t, m.Terminal(traj))
		require.NoError(t, m.ApplyAction(traj, 0))
		require.NoError(t, m.AdvanceToDecision(traj, 0))
	}
	require.True(t, m.Terminal(traj))
}

func TestCopy(t *testing.T) {
	m := newModel()
	traj := m.NewTrajectory(1)
	traj.OnHand = 4
	traj.Cost = 2

	c := traj.Copy(5)
	c.Pipeline[0] = 9

	require.Equal(t, 4, c.OnHand)
	require.Equal(t, 2.0, c.Cost)
	require.Equal(t, 0, traj.Pipeline[0], "Copy should not alias the pipeline")
}
