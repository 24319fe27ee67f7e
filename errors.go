package gridastar

import "errors"

var (
	// ErrInvalidDimensions indicates a grid was requested with cols < 1, rows < 1
	// or a non-positive resolution.
	ErrInvalidDimensions = errors.New("gridastar: grid needs cols >= 1, rows >= 1 and resolution > 0")
	// ErrGridTooSmall indicates the grid cannot hold a distinct source and destination.
	ErrGridTooSmall = errors.New("gridastar: grid must have at least two cells")
	// ErrOutOfBounds indicates a coordinate outside [0,cols)x[0,rows).
	ErrOutOfBounds = errors.New("gridastar: coordinate out of bounds")
	// ErrSameEndpoints indicates source and destination were placed on the same cell.
	ErrSameEndpoints = errors.New("gridastar: source and destination must differ")
	// ErrNotIdle is returned when starting a search that is already running or finished.
	ErrNotIdle = errors.New("gridastar: session is not idle")
	// ErrNotRunning is returned when stepping a session that was never started.
	ErrNotRunning = errors.New("gridastar: session is not running")
	// ErrNoPath indicates the frontier emptied before the destination was reached.
	ErrNoPath = errors.New("gridastar: no path found")
	// ErrParentCycle indicates parent links did not reach the source within cols*rows hops.
	ErrParentCycle = errors.New("gridastar: parent links do not terminate")
)
