package searcher

import "errors"

var ErrNoAllowedActions = errors.New("observation has no allowed actions")

// Engine drives a simulation trajectory of type T. A trajectory handed to an
// Engine must not be shared with another in-flight search.
type Engine[T any] interface {
	// Reset copies the state of source into traj.
	Reset(traj, source T) error
	// ApplyAction commits an action; the trajectory may be left awaiting events.
	ApplyAction(traj T, action int) error
	// AdvanceToDecision processes events until the next decision point or until
	// maxSteps decisions have elapsed. maxSteps <= 0 means no bound.
	AdvanceToDecision(traj T, maxSteps int) error
	// AwaitingEvent reports whether traj is mid-transition after an action.
	AwaitingEvent(traj T) bool
	Terminal(traj T) bool
	Features(traj T) []float64
	Mask(traj T) []bool
	CumulativeCost(traj T) float64
	// Seed reseeds the random source that drives traj's events.
	Seed(traj T, seed uint64)
	DecisionSteps(traj T) int
}

// Policy picks an action from an observation. Used for rollouts and baselines.
type Policy interface {
	Action(obs Observation) (int, error)
}

func observe[T any](engine Engine[T], traj T) Observation {
	return Observation{
		Features: engine.Features(traj),
		Mask:     engine.Mask(traj),
	}.clone()
}
