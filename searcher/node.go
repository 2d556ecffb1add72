package searcher

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Observation is a feature vector with a validity mask over the action space.
type Observation struct {
	Features []float64
	Mask     []bool
}

func (o Observation) clone() Observation {
	c := Observation{
		Features: make([]float64, len(o.Features)),
		Mask:     make([]bool, len(o.Mask)),
	}
	copy(c.Features, o.Features)
	copy(c.Mask, o.Mask)
	return c
}

// Allowed returns the action indices whose mask entry is set, in order.
func (o Observation) Allowed() []int {
	allowed := make([]int, 0, len(o.Mask))
	for i, ok := range o.Mask {
		if ok {
			allowed = append(allowed, i)
		}
	}
	return allowed
}

// Distance is the Euclidean distance between features plus the number of
// mismatching mask entries. Shape mismatches are infinitely far apart.
func (o Observation) Distance(other Observation) float64 {
	if len(o.Features) != len(other.Features) || len(o.Mask) != len(other.Mask) {
		return math.Inf(1)
	}

	mismatches := 0
	for i := range o.Mask {
		if o.Mask[i] != other.Mask[i] {
			mismatches++
		}
	}
	return floats.Distance(o.Features, other.Features, 2) + float64(mismatches)
}

func (o Observation) similar(other Observation) bool {
	return o.Distance(other) < Tolerance
}
