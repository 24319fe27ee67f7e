package gridastar

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_Hints(t *testing.T) {
	session := newTestSession(t, 4, 3, Coord{0, 1}, Coord{3, 1})
	paint(t, session, Coord{2, 0})
	require.NoError(t, session.Start())
	_, err := session.Step()
	require.NoError(t, err)
	_, err = session.Step()
	require.NoError(t, err)

	frame, err := session.Frame()
	require.NoError(t, err)
	assert.Equal(t, StateRunning, frame.State)
	assert.Equal(t, 2, frame.Step)
	require.NotNil(t, frame.Current)

	assert.Equal(t, HintSource, frame.HintAt(Coord{0, 1}))
	assert.Equal(t, HintDestination, frame.HintAt(Coord{3, 1}))
	assert.Equal(t, HintObstacle, frame.HintAt(Coord{2, 0}))
	assert.Equal(t, HintDefault, frame.HintAt(Coord{9, 9}))
	for _, c := range frame.Open {
		assert.Equal(t, HintFrontier, frame.HintAt(c), "open %v", c)
	}
	for _, c := range frame.Closed {
		if c != frame.Source {
			assert.Equal(t, HintVisited, frame.HintAt(c), "closed %v", c)
		}
	}
	assert.Empty(t, frame.Notice)
}

func TestFrame_IsACopy(t *testing.T) {
	session := newTestSession(t, 3, 3, Coord{0, 0}, Coord{2, 2})
	require.NoError(t, session.Start())
	_, err := session.Step()
	require.NoError(t, err)

	frame, err := session.Frame()
	require.NoError(t, err)
	frame.Open[0] = Coord{9, 9}
	frame.Hints[0] = HintObstacle
	*frame.Current = Coord{7, 7}

	again, err := session.Frame()
	require.NoError(t, err)
	assert.NotEqual(t, Coord{9, 9}, again.Open[0])
	assert.Equal(t, HintSource, again.Hints[0])
	assert.Equal(t, Coord{0, 0}, *again.Current)
}

func TestFrame_PathLine(t *testing.T) {
	session, err := NewSession(3, 1, WithResolution(10), WithSource(Coord{0, 0}), WithDestination(Coord{2, 0}))
	require.NoError(t, err)
	require.NoError(t, session.Start())
	for !session.State().Terminal() {
		_, err := session.Step()
		require.NoError(t, err)
	}

	frame, err := session.Frame()
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{25, 5}, {15, 5}, {5, 5}}, frame.PathLine())
}

func TestHint_Text(t *testing.T) {
	data, err := json.Marshal([]Hint{HintDefault, HintFrontier, HintVisited})
	require.NoError(t, err)
	assert.JSONEq(t, `["default","frontier","visited"]`, string(data))
	assert.Equal(t, "unknown", Hint(99).String())
}
