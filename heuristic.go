package gridastar

import (
	"math"

	"github.com/paulmach/orb"
)

// Heuristic returns the estimated cost between two pixel-scale positions.
type Heuristic func(from orb.Point, to orb.Point) float64

// Manhattan is |dx| + |dy|. With unit orthogonal moves scaled by the grid
// resolution it never overestimates, so the search stays admissible.
func Manhattan(from orb.Point, to orb.Point) float64 {
	return math.Abs(from.X()-to.X()) + math.Abs(from.Y()-to.Y())
}
