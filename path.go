package gridastar

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/pdrpinto/gridastar/internal"
)

// Path is an ordered run of cells from a frontier node back to the source.
// It is derived from parent links and never authoritative.
type Path []Coord

// Len is the number of edges in the path.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Forward returns the path ordered from the source to its last node.
func (p Path) Forward() Path { return internal.Reverse(p) }

// Line returns the cell centres of p as a polyline in pixel space.
func (p Path) Line(resolution float64) orb.LineString {
	line := make(orb.LineString, 0, len(p))
	half := resolution / 2
	for _, c := range p {
		line = append(line, orb.Point{float64(c.I)*resolution + half, float64(c.J)*resolution + half})
	}
	return line
}

// Reconstruct follows parent links from the node at index until a node with
// no parent. The walk is capped at cols*rows hops; running past the cap means
// the parent links form a cycle and ErrParentCycle is returned along with the
// partial path.
func Reconstruct(grid *Grid, from int) (Path, error) {
	limit := grid.Len()
	path := Path{grid.Coord(from)}
	current := grid.node(from)
	for hops := 0; current.HasParent(); hops++ {
		if hops >= limit {
			return path, fmt.Errorf("%w: from %v after %d hops", ErrParentCycle, grid.Coord(from), hops)
		}
		current = grid.node(current.Parent)
		path = append(path, current.Coord)
	}
	return path, nil
}
