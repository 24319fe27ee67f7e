package gridastar

import "github.com/pdrpinto/gridastar/internal"

// Role names one of the two distinguished cells.
type Role int

const (
	RoleNone Role = iota
	RoleSource
	RoleDestination
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleDestination:
		return "destination"
	}
	return "none"
}

// Editor turns pointer gestures into grid edits for one session. Every
// pointer edit is ignored unless the session is idle.
type Editor struct {
	session    *Session
	relocating Role
	generation int
	// underneath is the obstacle flag of the cell the relocating role covers.
	underneath bool
}

func NewEditor(session *Session) *Editor {
	return &Editor{session: session}
}

// Relocating reports which role, if any, is being dragged.
func (e *Editor) Relocating() Role {
	if e.relocating != RoleNone && e.generation != e.session.generation {
		e.relocating = RoleNone
	}
	return e.relocating
}

func (e *Editor) idle() bool { return e.session.State() == StateIdle }

// Press handles pointer-down at a screen coordinate.
func (e *Editor) Press(x, y float64) {
	if c, ok := e.session.grid.Locate(x, y); ok {
		e.PressCell(c)
	}
}

// Drag handles pointer movement with the button held.
func (e *Editor) Drag(x, y float64) {
	if c, ok := e.session.grid.Locate(x, y); ok {
		e.DragCell(c)
	}
}

// Release handles pointer-up. Releasing outside the grid ends a relocation
// where the role currently sits.
func (e *Editor) Release(x, y float64) {
	c, ok := e.session.grid.Locate(x, y)
	if !ok {
		e.relocating = RoleNone
		return
	}
	e.ReleaseCell(c)
}

// PressCell paints c as an obstacle, or starts relocating the role on c.
func (e *Editor) PressCell(c Coord) {
	if !e.idle() {
		return
	}
	index, err := e.session.grid.Index(c)
	if err != nil {
		return
	}

	switch index {
	case e.session.source:
		e.begin(RoleSource)
	case e.session.destination:
		e.begin(RoleDestination)
	default:
		e.session.grid.setObstacle(index, true)
	}
}

func (e *Editor) begin(role Role) {
	e.relocating = role
	e.generation = e.session.generation
	e.underneath = false
}

// DragCell paints c, or moves the role being relocated onto c.
// A role never moves onto the other role. Cells the role passes over keep
// their obstacle flag once it moves on.
func (e *Editor) DragCell(c Coord) {
	if !e.idle() {
		return
	}
	index, err := e.session.grid.Index(c)
	if err != nil {
		return
	}

	role := e.Relocating()
	if role == RoleNone {
		if index != e.session.source && index != e.session.destination {
			e.session.grid.setObstacle(index, true)
		}
		return
	}
	if index == e.other(role) || index == e.position(role) {
		return
	}
	e.hover(role, index)
}

// ReleaseCell commits the role being relocated to c. Landing on the other role
// snaps one grid step back along the dominant axis of travel.
func (e *Editor) ReleaseCell(c Coord) {
	role := e.Relocating()
	e.relocating = RoleNone
	if role == RoleNone || !e.idle() {
		return
	}
	index, err := e.session.grid.Index(c)
	if err != nil {
		return
	}

	if index == e.other(role) {
		index = e.snapBack(e.position(role), index)
	}
	if index != e.position(role) {
		e.session.grid.setObstacle(e.position(role), e.underneath)
	}
	e.underneath = false
	e.move(role, index)
}

// snapBack steps from target one cell toward from along the axis with the
// larger displacement.
func (e *Editor) snapBack(from, target int) int {
	grid := e.session.grid
	a, b := grid.Coord(from), grid.Coord(target)
	dx, dy := b.I-a.I, b.J-a.J

	back := b
	if internal.Abs(dx) >= internal.Abs(dy) && dx != 0 {
		back.I -= internal.Sign(dx)
	} else {
		back.J -= internal.Sign(dy)
	}
	index, err := grid.Index(back)
	if err != nil {
		return from
	}
	return index
}

func (e *Editor) position(role Role) int {
	if role == RoleSource {
		return e.session.source
	}
	return e.session.destination
}

func (e *Editor) other(role Role) int {
	if role == RoleSource {
		return e.session.destination
	}
	return e.session.source
}

// hover moves role onto index for the length of a drag, restoring the cell
// it leaves and clearing the one it enters.
func (e *Editor) hover(role Role, index int) {
	grid := e.session.grid
	grid.setObstacle(e.position(role), e.underneath)
	e.underneath = grid.obstacle(index)
	e.move(role, index)
}

// move places role on index and clears its obstacle for good.
func (e *Editor) move(role Role, index int) {
	e.session.grid.setObstacle(index, false)
	if role == RoleSource {
		e.session.source = index
	} else {
		e.session.destination = index
	}
}

// Scatter resets the session and then flags every cell other than the source
// and destination as an obstacle when src picks LabelObstacle from weights.
// A nil weights table means DefaultObstacleWeights.
func (e *Editor) Scatter(src ObstacleSource, weights []Weighted) int {
	if weights == nil {
		weights = DefaultObstacleWeights
	}
	e.relocating = RoleNone
	e.session.Reset()

	placed := 0
	for index := 0; index < e.session.grid.Len(); index++ {
		if index == e.session.source || index == e.session.destination {
			continue
		}
		if src.Pick(weights) == LabelObstacle {
			e.session.grid.setObstacle(index, true)
			placed++
		}
	}
	e.session.logger.Debug("Obstacles scattered", "placed", placed, "cells", e.session.grid.Len())
	return placed
}
