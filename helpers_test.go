package gridastar

import (
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestSession builds a unit-resolution session with pinned endpoints and a
// silent logger so costs read as plain edge counts.
func newTestSession(t *testing.T, cols, rows int, source, destination Coord) *Session {
	t.Helper()
	session, err := NewSession(cols, rows,
		WithResolution(1),
		WithSource(source),
		WithDestination(destination),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	return session
}

func paint(t *testing.T, session *Session, cells ...Coord) {
	t.Helper()
	editor := NewEditor(session)
	for _, c := range cells {
		editor.PressCell(c)
		editor.ReleaseCell(c)
		index, err := session.Grid().Index(c)
		require.NoError(t, err)
		require.True(t, session.Grid().Node(index).Obstacle, "cell %v not painted", c)
	}
}

func runToEnd(t *testing.T, session *Session) State {
	t.Helper()
	require.NoError(t, session.Start())
	limit := session.Grid().Len() + 1
	for i := 0; i < limit; i++ {
		state, err := session.Step()
		require.NoError(t, err)
		if state.Terminal() {
			return state
		}
	}
	t.Fatalf("session still %s after %d steps", session.State(), limit)
	return session.State()
}

func coordSet(coords []Coord) map[Coord]bool {
	set := make(map[Coord]bool, len(coords))
	for _, c := range coords {
		set[c] = true
	}
	return set
}
