package gridastar

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// noParent marks a node without a predecessor.
const noParent = -1

// Coord identifies a cell by column I and row J.
type Coord struct {
	I int `json:"i"`
	J int `json:"j"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.I, c.J) }

// Node is one cell of the grid together with its search bookkeeping.
// Parent is an arena index, -1 when the node has no predecessor.
type Node struct {
	Coord
	Obstacle bool
	G        float64
	H        float64
	F        float64
	Parent   int

	neighbors []int
}

// HasParent reports whether a predecessor has been recorded.
func (n Node) HasParent() bool { return n.Parent != noParent }

func (n *Node) resetScores() {
	n.G, n.H, n.F = 0, 0, 0
	n.Parent = noParent
}

// Grid is a cols x rows arena of nodes with precomputed orthogonal adjacency.
// Nodes are stored column-major: index = i*rows + j.
type Grid struct {
	cols       int
	rows       int
	resolution float64
	nodes      []Node
}

// NewGrid allocates the node arena and links every node to its left, right,
// up and down neighbours, skipping directions that leave the grid.
//
// Time: O(cols*rows). Memory: O(cols*rows).
func NewGrid(cols, rows int, resolution float64) (*Grid, error) {
	if cols < 1 || rows < 1 || resolution <= 0 {
		return nil, fmt.Errorf("%w: %dx%d at %g", ErrInvalidDimensions, cols, rows, resolution)
	}

	grid := &Grid{
		cols:       cols,
		rows:       rows,
		resolution: resolution,
		nodes:      make([]Node, cols*rows),
	}
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			grid.nodes[grid.index(i, j)] = Node{Coord: Coord{I: i, J: j}, Parent: noParent}
		}
	}

	for idx := range grid.nodes {
		node := &grid.nodes[idx]
		i, j := node.I, node.J
		neighbors := make([]int, 0, 4)
		if i > 0 {
			neighbors = append(neighbors, grid.index(i-1, j))
		}
		if i < cols-1 {
			neighbors = append(neighbors, grid.index(i+1, j))
		}
		if j > 0 {
			neighbors = append(neighbors, grid.index(i, j-1))
		}
		if j < rows-1 {
			neighbors = append(neighbors, grid.index(i, j+1))
		}
		node.neighbors = neighbors
	}

	return grid, nil
}

// FitViewport derives grid dimensions from display measurements,
// flooring each side by the resolution.
func FitViewport(width, height, resolution float64) (cols, rows int) {
	if resolution <= 0 {
		return 0, 0
	}
	return int(math.Floor(width / resolution)), int(math.Floor(height / resolution))
}

func (g *Grid) Cols() int               { return g.cols }
func (g *Grid) Rows() int               { return g.rows }
func (g *Grid) Len() int                { return len(g.nodes) }
func (g *Grid) Resolution() float64     { return g.resolution }
func (g *Grid) index(i, j int) int      { return i*g.rows + j }
func (g *Grid) InBounds(c Coord) bool   { return c.I >= 0 && c.I < g.cols && c.J >= 0 && c.J < g.rows }
func (g *Grid) Coord(index int) Coord   { return g.nodes[index].Coord }
func (g *Grid) Node(index int) Node     { return g.nodes[index] }
func (g *Grid) node(index int) *Node    { return &g.nodes[index] }
func (g *Grid) obstacle(index int) bool { return g.nodes[index].Obstacle }

// Index maps a coordinate to its arena index.
func (g *Grid) Index(c Coord) (int, error) {
	if !g.InBounds(c) {
		return 0, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, c, g.cols, g.rows)
	}
	return g.index(c.I, c.J), nil
}

// Neighbors returns a copy of the neighbour indices of the node at index.
func (g *Grid) Neighbors(index int) []int {
	neighbors := g.nodes[index].neighbors
	out := make([]int, len(neighbors))
	copy(out, neighbors)
	return out
}

// Position is the pixel-scale corner of a cell, the space the heuristic works in.
func (g *Grid) Position(index int) orb.Point {
	c := g.nodes[index].Coord
	return orb.Point{float64(c.I) * g.resolution, float64(c.J) * g.resolution}
}

// Center is the pixel-scale centre of a cell.
func (g *Grid) Center(index int) orb.Point {
	p := g.Position(index)
	half := g.resolution / 2
	return orb.Point{p.X() + half, p.Y() + half}
}

// Locate maps a screen coordinate to the cell under it using
// index = floor(coordinate / resolution).
func (g *Grid) Locate(x, y float64) (Coord, bool) {
	c := Coord{
		I: int(math.Floor(x / g.resolution)),
		J: int(math.Floor(y / g.resolution)),
	}
	return c, g.InBounds(c)
}

func (g *Grid) setObstacle(index int, obstacle bool) {
	g.nodes[index].Obstacle = obstacle
}

func (g *Grid) resetScores() {
	for idx := range g.nodes {
		g.nodes[idx].resetScores()
	}
}
