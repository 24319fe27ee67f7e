package gridastar

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obstacleAt(t *testing.T, session *Session, c Coord) bool {
	t.Helper()
	index, err := session.Grid().Index(c)
	require.NoError(t, err)
	return session.Grid().Node(index).Obstacle
}

func TestEditor_PaintByPointer(t *testing.T) {
	session, err := NewSession(4, 4, WithResolution(30), WithSource(Coord{0, 0}), WithDestination(Coord{3, 3}))
	require.NoError(t, err)
	editor := NewEditor(session)

	editor.Press(45, 45) // (1,1)
	editor.Drag(75, 45)  // (2,1)
	editor.Drag(75, 75)  // (2,2)
	editor.Drag(5, 5)    // source stays clear
	editor.Release(75, 75)

	assert.True(t, obstacleAt(t, session, Coord{1, 1}))
	assert.True(t, obstacleAt(t, session, Coord{2, 1}))
	assert.True(t, obstacleAt(t, session, Coord{2, 2}))
	assert.False(t, obstacleAt(t, session, Coord{0, 0}))

	editor.Press(500, 500) // outside the canvas
	assert.Equal(t, RoleNone, editor.Relocating())
}

func TestEditor_IgnoredUnlessIdle(t *testing.T) {
	session := newTestSession(t, 4, 4, Coord{0, 0}, Coord{3, 3})
	editor := NewEditor(session)
	require.NoError(t, session.Start())

	editor.PressCell(Coord{1, 1})
	editor.DragCell(Coord{1, 2})
	assert.False(t, obstacleAt(t, session, Coord{1, 1}))
	assert.False(t, obstacleAt(t, session, Coord{1, 2}))

	editor.PressCell(Coord{0, 0})
	assert.Equal(t, RoleNone, editor.Relocating())
	editor.ReleaseCell(Coord{2, 2})
	assert.Equal(t, Coord{0, 0}, session.Source())
}

func TestEditor_RelocateSource(t *testing.T) {
	session := newTestSession(t, 5, 5, Coord{0, 0}, Coord{4, 4})
	paint(t, session, Coord{1, 0}, Coord{2, 0})
	editor := NewEditor(session)

	editor.PressCell(Coord{0, 0})
	require.Equal(t, RoleSource, editor.Relocating())
	editor.DragCell(Coord{1, 0})
	assert.Equal(t, Coord{1, 0}, session.Source())
	assert.False(t, obstacleAt(t, session, Coord{1, 0}), "the role never sits on an obstacle")
	editor.DragCell(Coord{2, 0})
	assert.True(t, obstacleAt(t, session, Coord{1, 0}), "the obstacle comes back once the role moves on")
	editor.ReleaseCell(Coord{2, 1})

	assert.Equal(t, RoleNone, editor.Relocating())
	assert.Equal(t, Coord{2, 1}, session.Source())
	assert.True(t, obstacleAt(t, session, Coord{1, 0}))
	assert.True(t, obstacleAt(t, session, Coord{2, 0}))
	assert.False(t, obstacleAt(t, session, Coord{2, 1}))
}

func TestEditor_DragAcrossWallKeepsWall(t *testing.T) {
	session := newTestSession(t, 5, 5, Coord{0, 0}, Coord{4, 4})
	wall := []Coord{{1, 0}, {2, 0}, {3, 0}}
	paint(t, session, wall...)
	editor := NewEditor(session)

	editor.PressCell(Coord{0, 0})
	for _, c := range []Coord{{1, 0}, {2, 0}, {3, 0}, {3, 1}} {
		editor.DragCell(c)
	}
	editor.ReleaseCell(Coord{3, 1})

	assert.Equal(t, Coord{3, 1}, session.Source())
	for _, c := range wall {
		assert.True(t, obstacleAt(t, session, c), "wall cell %v was erased", c)
	}
}

func TestEditor_ReleaseOnWallCommits(t *testing.T) {
	session := newTestSession(t, 5, 5, Coord{0, 0}, Coord{4, 4})
	paint(t, session, Coord{1, 0}, Coord{2, 0})
	editor := NewEditor(session)

	editor.PressCell(Coord{0, 0})
	editor.DragCell(Coord{1, 0})
	editor.ReleaseCell(Coord{2, 0})

	assert.Equal(t, Coord{2, 0}, session.Source())
	assert.True(t, obstacleAt(t, session, Coord{1, 0}))
	assert.False(t, obstacleAt(t, session, Coord{2, 0}), "the committed cell is cleared")
	assert.False(t, obstacleAt(t, session, Coord{0, 0}))
}

func TestEditor_DragNeverCollapsesRoles(t *testing.T) {
	session := newTestSession(t, 5, 5, Coord{1, 2}, Coord{3, 2})
	editor := NewEditor(session)

	editor.PressCell(Coord{1, 2})
	editor.DragCell(Coord{2, 2})
	editor.DragCell(Coord{3, 2})
	assert.Equal(t, Coord{2, 2}, session.Source(), "source stops short of the destination")
	assert.Equal(t, Coord{3, 2}, session.Destination())
}

func TestEditor_ReleaseOnOtherRoleSnapsBack(t *testing.T) {
	cases := []struct {
		name        string
		role        Coord
		other       Coord
		wantSnapped Coord
	}{
		{"source from the left", Coord{0, 2}, Coord{3, 2}, Coord{2, 2}},
		{"source from the right", Coord{4, 2}, Coord{1, 2}, Coord{2, 2}},
		{"source from above", Coord{2, 0}, Coord{2, 3}, Coord{2, 2}},
		{"source from below", Coord{2, 4}, Coord{2, 1}, Coord{2, 2}},
		{"source on the left edge", Coord{1, 0}, Coord{0, 0}, Coord{1, 0}},
		{"diagonal, horizontal dominates", Coord{0, 0}, Coord{3, 1}, Coord{2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := newTestSession(t, 5, 5, tc.role, tc.other)
			editor := NewEditor(session)

			editor.PressCell(tc.role)
			editor.ReleaseCell(tc.other)
			assert.Equal(t, tc.wantSnapped, session.Source())
			assert.Equal(t, tc.other, session.Destination())
		})
	}
}

func TestEditor_RelocateDestinationOntoSource(t *testing.T) {
	session := newTestSession(t, 5, 5, Coord{1, 1}, Coord{1, 4})
	editor := NewEditor(session)

	editor.PressCell(Coord{1, 4})
	require.Equal(t, RoleDestination, editor.Relocating())
	editor.DragCell(Coord{1, 3})
	editor.DragCell(Coord{1, 2})
	editor.ReleaseCell(Coord{1, 1})

	assert.Equal(t, Coord{1, 2}, session.Destination())
	assert.Equal(t, Coord{1, 1}, session.Source())
}

func TestEditor_ReleaseOutsideKeepsLastPosition(t *testing.T) {
	session, err := NewSession(4, 4, WithResolution(10), WithSource(Coord{0, 0}), WithDestination(Coord{3, 3}))
	require.NoError(t, err)
	editor := NewEditor(session)

	editor.Press(5, 5)
	editor.Drag(15, 5)
	editor.Release(-20, 5)
	assert.Equal(t, Coord{1, 0}, session.Source())
	assert.Equal(t, RoleNone, editor.Relocating())
}

func TestEditor_GestureDroppedByReset(t *testing.T) {
	session := newTestSession(t, 4, 4, Coord{0, 0}, Coord{3, 3})
	editor := NewEditor(session)

	editor.PressCell(Coord{0, 0})
	session.Reset()
	editor.DragCell(Coord{1, 1})
	assert.True(t, obstacleAt(t, session, Coord{1, 1}), "after reset a drag paints again")
	assert.Equal(t, Coord{0, 0}, session.Source())
}

func TestEditor_RandomGesturesKeepInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	session := newTestSession(t, 6, 4, Coord{0, 0}, Coord{5, 3})
	editor := NewEditor(session)
	grid := session.Grid()

	randomCell := func() Coord { return Coord{I: rng.IntN(6), J: rng.IntN(4)} }
	for round := 0; round < 500; round++ {
		switch rng.IntN(4) {
		case 0:
			editor.PressCell(session.Source())
		case 1:
			editor.PressCell(session.Destination())
		case 2:
			editor.DragCell(randomCell())
		case 3:
			editor.ReleaseCell(randomCell())
		}

		require.NotEqual(t, session.Source(), session.Destination(), "round %d", round)
		src, _ := grid.Index(session.Source())
		dst, _ := grid.Index(session.Destination())
		require.False(t, grid.Node(src).Obstacle, "round %d: source is an obstacle", round)
		require.False(t, grid.Node(dst).Obstacle, "round %d: destination is an obstacle", round)
	}
}

type fixedSource string

func (f fixedSource) Pick([]Weighted) string { return string(f) }

func TestEditor_Scatter(t *testing.T) {
	session := newTestSession(t, 5, 4, Coord{0, 0}, Coord{4, 3})
	editor := NewEditor(session)
	require.NoError(t, session.Start())

	placed := editor.Scatter(fixedSource(LabelObstacle), nil)
	assert.Equal(t, 18, placed)
	assert.Equal(t, StateIdle, session.State(), "scatter resets first")

	frame, err := session.Frame()
	require.NoError(t, err)
	assert.Len(t, frame.Obstacles, 18)
	assert.Equal(t, HintSource, frame.HintAt(Coord{0, 0}))
	assert.Equal(t, HintDestination, frame.HintAt(Coord{4, 3}))

	placed = editor.Scatter(fixedSource(LabelNonObstacle), nil)
	assert.Zero(t, placed)
	frame, err = session.Frame()
	require.NoError(t, err)
	assert.Empty(t, frame.Obstacles)
}

func TestEditor_ScatterIsWeighted(t *testing.T) {
	session := newTestSession(t, 40, 25, Coord{0, 0}, Coord{39, 24})
	editor := NewEditor(session)

	placed := editor.Scatter(NewWeightedPicker(rand.New(rand.NewPCG(3, 5))), DefaultObstacleWeights)
	ratio := float64(placed) / float64(session.Grid().Len()-2)
	assert.InDelta(t, 0.30, ratio, 0.05)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "source", RoleSource.String())
	assert.Equal(t, "destination", RoleDestination.String())
	assert.Equal(t, "none", RoleNone.String())
}
