package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("proportional at temperature 1", func(t *testing.T) {
		got := normalize([]float64{1, 3}, 1)

		require.InDeltaSlice(t, []float64{0.25, 0.75}, got, 1e-9)
	})

	t.Run("sharpening at higher temperature", func(t *testing.T) {
		got := normalize([]float64{1, 2}, 2)

		require.InDeltaSlice(t, []float64{0.2, 0.8}, got, 1e-9)
	})

	t.Run("flattening at temperature 0", func(t *testing.T) {
		got := normalize([]float64{1, 5, 0}, 0)

		require.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, got, 1e-9)
	})

	t.Run("large counts stay finite", func(t *testing.T) {
		got := normalize([]float64{1e6, 1e6}, 50)

		require.InDeltaSlice(t, []float64{0.5, 0.5}, got, 1e-9)
	})
}

func TestTargetGreedy(t *testing.T) {
	target := Target{Actions: []int{0, 4, 7}, Policy: []float64{0.2, 0.4, 0.4}}

	require.Equal(t, 4, target.Greedy(), "Should return the first most probable action")
	require.Panics(t, func() { Target{}.Greedy() })
}

func TestResults(t *testing.T) {
	t.Run("falling back to uniform without a root", func(t *testing.T) {
		engine := newMockEngine([]bool{true, false, true, true}, true)
		traj := &mockTrajectory{}
		m := New(engine, &mockTrajectory{}, rootObservation(engine, traj))

		got := m.Results(1)

		require.Equal(t, []int{0, 2, 3}, got.Actions)
		require.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, got.Policy, 1e-9)
		require.Zero(t, got.Value)
	})

	t.Run("falling back to uniform without root visits", func(t *testing.T) {
		engine := newMockEngine([]bool{true, true}, true)
		traj := &mockTrajectory{}
		m := New(engine, &mockTrajectory{}, rootObservation(engine, traj))
		m.initRoot(traj)

		got := m.Results(1)

		require.Equal(t, []int{0, 1}, got.Actions)
		require.InDeltaSlice(t, []float64{0.5, 0.5}, got.Policy, 1e-9)
		require.Zero(t, got.Value, "Optimistic values must not leak into the value target")
	})

	t.Run("reading visit counts and values", func(t *testing.T) {
		engine := newMockEngine([]bool{true, true}, true)
		traj := &mockTrajectory{}
		m := New(engine, &mockTrajectory{}, rootObservation(engine, traj))
		root := m.initRoot(traj)
		root.actions[0].update(-2)
		root.actions[1].update(-1)
		root.actions[1].update(-1)
		root.actions[1].update(-1)

		got := m.Results(1)

		require.Equal(t, []int{0, 1}, got.Actions)
		require.InDeltaSlice(t, []float64{0.25, 0.75}, got.Policy, 1e-9)
		require.InDelta(t, 0.25*-2+0.75*-1, got.Value, 1e-9)
		require.Equal(t, 1, got.Greedy())
	})

	t.Run("ignoring unvisited actions in the value", func(t *testing.T) {
		engine := newMockEngine([]bool{true, true}, true)
		traj := &mockTrajectory{}
		m := New(engine, &mockTrajectory{}, rootObservation(engine, traj))
		root := m.initRoot(traj)
		root.actions[0].update(-4)

		got := m.Results(1)

		require.InDeltaSlice(t, []float64{1, 0}, got.Policy, 1e-9)
		require.InDelta(t, -4.0, got.Value, 1e-9)
	})
}
