package gridastar

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
)

// Session owns one grid, its search state and the two distinguished cells.
// It is not safe for concurrent use; hosts that edit and step from different
// goroutines must serialize access themselves.
type Session struct {
	grid        *Grid
	search      *search
	heuristic   Heuristic
	source      int
	destination int
	generation  int

	rng    *rand.Rand
	logger *slog.Logger
}

// NewSession builds a cols x rows grid and places the source and destination.
// Unless pinned with WithSource/WithDestination the source lands in the left
// half and the destination in the right half.
func NewSession(cols, rows int, options ...Option) (*Session, error) {
	opts := applyOptions(options)

	grid, err := NewGrid(cols, rows, opts.Resolution)
	if err != nil {
		return nil, err
	}
	if grid.Len() < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridTooSmall, cols, rows)
	}

	s := &Session{
		grid:      grid,
		heuristic: opts.Heuristic,
		rng:       opts.Rand,
		logger:    opts.Logger.With("component", "session"),
	}
	s.search = newSearch(grid, s.heuristic)
	if err := s.placeEndpoints(opts.Source, opts.Destination); err != nil {
		return nil, err
	}

	s.logger.Debug("Session created", "cols", cols, "rows", rows, "source", s.Source(), "destination", s.Destination())
	return s, nil
}

func (s *Session) placeEndpoints(source, destination *Coord) error {
	cols, rows := s.grid.Cols(), s.grid.Rows()

	// --- Random halves, as the visualiser always did ---
	var src, dst Coord
	destinationLow := int(math.Floor(float64(cols)/2 + 1))
	if cols-destinationLow >= 1 {
		src = Coord{I: int(math.Floor(s.rng.Float64() * float64(cols) / 2)), J: s.rng.IntN(rows)}
		dst = Coord{I: s.rng.IntN(cols-destinationLow) + destinationLow, J: s.rng.IntN(rows)}
	} else {
		first := s.rng.IntN(s.grid.Len())
		second := (first + 1 + s.rng.IntN(s.grid.Len()-1)) % s.grid.Len()
		src, dst = s.grid.Coord(first), s.grid.Coord(second)
	}

	if source != nil {
		src = *source
	}
	if destination != nil {
		dst = *destination
	}
	if src == dst {
		if source != nil && destination != nil {
			return fmt.Errorf("%w: both at %v", ErrSameEndpoints, src)
		}
		var err error
		if destination == nil {
			dst, err = firstNeighbor(s.grid, src)
		} else {
			src, err = firstNeighbor(s.grid, dst)
		}
		if err != nil {
			return err
		}
	}

	srcIndex, err := s.grid.Index(src)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	dstIndex, err := s.grid.Index(dst)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	s.source, s.destination = srcIndex, dstIndex
	s.grid.setObstacle(srcIndex, false)
	s.grid.setObstacle(dstIndex, false)
	return nil
}

// firstNeighbor is the cell a colliding endpoint is moved to.
func firstNeighbor(grid *Grid, c Coord) (Coord, error) {
	index, err := grid.Index(c)
	if err != nil {
		return Coord{}, err
	}
	return grid.Coord(grid.node(index).neighbors[0]), nil
}

// Grid exposes the current grid. It has no exported mutators.
func (s *Session) Grid() *Grid          { return s.grid }
func (s *Session) State() State         { return s.search.state }
func (s *Session) Steps() int           { return s.search.stepCount }
func (s *Session) Source() Coord        { return s.grid.Coord(s.source) }
func (s *Session) Destination() Coord   { return s.grid.Coord(s.destination) }
func (s *Session) Heuristic() Heuristic { return s.heuristic }

// Current returns the node expanded by the latest step, if any.
func (s *Session) Current() (Coord, bool) {
	if s.search.current == noParent {
		return Coord{}, false
	}
	return s.grid.Coord(s.search.current), true
}

// Start moves an idle session into the running state with the frontier
// seeded by the source and every score cleared.
func (s *Session) Start() error {
	if s.search.state != StateIdle {
		return fmt.Errorf("%w: state is %s", ErrNotIdle, s.search.state)
	}
	s.generation++
	s.grid.setObstacle(s.source, false)
	s.grid.setObstacle(s.destination, false)
	s.search.begin(s.source, s.destination)
	s.logger.Info("Search started", "source", s.Source(), "destination", s.Destination())
	return nil
}

// Step expands exactly one node. Once solved or exhausted further calls
// return the terminal state without doing anything.
func (s *Session) Step() (State, error) {
	previous := s.search.state
	if previous == StateIdle {
		return previous, ErrNotRunning
	}

	state := s.search.step()
	if state != previous {
		switch state {
		case StateSolved:
			s.logger.Info("Search solved", "steps", s.search.stepCount, "cost", s.grid.node(s.destination).G, "closed", len(s.search.closedOrder))
		case StateExhausted:
			s.logger.Info("No solution", "steps", s.search.stepCount, "closed", len(s.search.closedOrder))
		}
	} else if state == StateRunning {
		s.logger.Debug("Step", "index", s.search.stepCount, "current", s.grid.Coord(s.search.current), "open", s.search.openSet.Len())
	}
	return state, nil
}

// Path rebuilds the route from the current frontier node back to the source.
// Before the first step it is empty.
func (s *Session) Path() (Path, error) {
	if s.search.current == noParent {
		return nil, nil
	}
	return Reconstruct(s.grid, s.search.current)
}

// Reset rebuilds the grid with the same dimensions, clearing obstacles and all
// search state, and returns the session to idle. Any run in progress is dropped.
func (s *Session) Reset() {
	if err := s.rebuild(s.grid.Cols(), s.grid.Rows()); err != nil {
		s.logger.Error("Session reset failed", "error", err)
		return
	}
	s.logger.Debug("Session reset")
}

// Rewind returns to idle keeping the painted obstacles.
func (s *Session) Rewind() {
	s.generation++
	s.grid.resetScores()
	s.search = newSearch(s.grid, s.heuristic)
	s.logger.Debug("Session rewound")
}

// Resize rebuilds the grid with new dimensions. Source and destination keep
// their coordinates when those still exist and are clamped inside otherwise.
func (s *Session) Resize(cols, rows int) error {
	if err := s.rebuild(cols, rows); err != nil {
		return err
	}
	s.logger.Info("Session resized", "cols", cols, "rows", rows, "source", s.Source(), "destination", s.Destination())
	return nil
}

func (s *Session) rebuild(cols, rows int) error {
	grid, err := NewGrid(cols, rows, s.grid.Resolution())
	if err != nil {
		return err
	}
	if grid.Len() < 2 {
		return fmt.Errorf("%w: %dx%d", ErrGridTooSmall, cols, rows)
	}

	src := clamp(s.Source(), cols, rows)
	dst := clamp(s.Destination(), cols, rows)

	dst, err = remapDestination(grid, src, dst)
	if err != nil {
		return err
	}

	s.generation++
	s.grid = grid
	s.search = newSearch(grid, s.heuristic)
	return s.placeEndpoints(&src, &dst)
}

func clamp(c Coord, cols, rows int) Coord {
	return Coord{I: min(max(c.I, 0), cols-1), J: min(max(c.J, 0), rows-1)}
}

// remapDestination moves a destination that collapsed onto the source to the
// source's first neighbour.
func remapDestination(grid *Grid, src, dst Coord) (Coord, error) {
	if src != dst {
		return dst, nil
	}
	return firstNeighbor(grid, src)
}
