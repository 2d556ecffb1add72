package searcher

import "math"

// UCT over the actions of a decision node:
// q + c * sqrt(2*ln(N+1) / (n+1))
type uct struct {
	exploration float64
	numerator   float64
}

func newUCT(exploration float64, N int) *uct {
	if N < 0 {
		panic("N cannot be negative")
	}
	return &uct{exploration: exploration, numerator: 2 * math.Log(float64(N)+1)}
}

func (u uct) evaluate(q float64, n int) float64 {
	if n < 0 {
		panic("n cannot be negative")
	}
	return q + u.exploration*math.Sqrt(u.numerator/float64(n+1))
}
