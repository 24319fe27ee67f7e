package gridastar

import "github.com/paulmach/orb"

// Hint tells a renderer what a cell currently represents. Colours are the
// renderer's business.
type Hint uint8

const (
	HintDefault Hint = iota
	HintSource
	HintDestination
	HintObstacle
	HintFrontier
	HintVisited
)

var hintNames = [...]string{"default", "source", "destination", "obstacle", "frontier", "visited"}

func (h Hint) String() string {
	if int(h) < len(hintNames) {
		return hintNames[h]
	}
	return "unknown"
}

// MarshalText encodes hints by name for JSON frames.
func (h Hint) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// NoSolutionNotice is the user-facing message once the frontier empties.
const NoSolutionNotice = "no solution"

// Frame is a read-only copy of everything a renderer needs for one tick.
// Mutating a Frame never affects the session it came from.
type Frame struct {
	Cols        int
	Rows        int
	Resolution  float64
	State       State
	Step        int
	Source      Coord
	Destination Coord
	Current     *Coord
	Open        []Coord
	Closed      []Coord
	Obstacles   []Coord
	Path        Path
	Hints       []Hint
	Notice      string
}

// HintAt returns the hint for c, HintDefault outside the grid.
func (f Frame) HintAt(c Coord) Hint {
	if c.I < 0 || c.I >= f.Cols || c.J < 0 || c.J >= f.Rows {
		return HintDefault
	}
	return f.Hints[c.I*f.Rows+c.J]
}

// PathLine is the path through cell centres in pixel space.
func (f Frame) PathLine() orb.LineString { return f.Path.Line(f.Resolution) }

// Frame snapshots the session. A broken parent chain leaves Path holding the
// partial walk and is reported as the error.
func (s *Session) Frame() (Frame, error) {
	grid := s.grid
	frame := Frame{
		Cols:        grid.Cols(),
		Rows:        grid.Rows(),
		Resolution:  grid.Resolution(),
		State:       s.search.state,
		Step:        s.search.stepCount,
		Source:      s.Source(),
		Destination: s.Destination(),
		Hints:       make([]Hint, grid.Len()),
	}
	if current, ok := s.Current(); ok {
		frame.Current = &current
	}

	open := s.search.openNodes()
	frame.Open = make([]Coord, 0, len(open))
	for _, index := range open {
		frame.Open = append(frame.Open, grid.Coord(index))
		frame.Hints[index] = HintFrontier
	}
	frame.Closed = make([]Coord, 0, len(s.search.closedOrder))
	for _, index := range s.search.closedOrder {
		frame.Closed = append(frame.Closed, grid.Coord(index))
		frame.Hints[index] = HintVisited
	}
	for index := 0; index < grid.Len(); index++ {
		if grid.obstacle(index) {
			frame.Obstacles = append(frame.Obstacles, grid.Coord(index))
			frame.Hints[index] = HintObstacle
		}
	}
	frame.Hints[s.source] = HintSource
	frame.Hints[s.destination] = HintDestination

	if s.search.state == StateExhausted {
		frame.Notice = NoSolutionNotice
	}

	path, err := s.Path()
	frame.Path = path
	return frame, err
}
