package gridastar

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruct_FollowsParents(t *testing.T) {
	grid, err := NewGrid(3, 1, 1)
	require.NoError(t, err)
	grid.node(2).Parent = 1
	grid.node(1).Parent = 0

	path, err := Reconstruct(grid, 2)
	require.NoError(t, err)
	assert.Equal(t, Path{{2, 0}, {1, 0}, {0, 0}}, path)
	assert.Equal(t, Path{{0, 0}, {1, 0}, {2, 0}}, path.Forward())
	assert.Equal(t, 2, path.Len())
}

func TestReconstruct_SingleNode(t *testing.T) {
	grid, err := NewGrid(2, 2, 1)
	require.NoError(t, err)

	path, err := Reconstruct(grid, 3)
	require.NoError(t, err)
	assert.Equal(t, Path{{1, 1}}, path)
	assert.Zero(t, path.Len())
	assert.Zero(t, Path(nil).Len())
}

func TestReconstruct_CycleIsCapped(t *testing.T) {
	grid, err := NewGrid(2, 2, 1)
	require.NoError(t, err)
	grid.node(0).Parent = 1
	grid.node(1).Parent = 0

	path, err := Reconstruct(grid, 0)
	assert.ErrorIs(t, err, ErrParentCycle)
	assert.LessOrEqual(t, len(path), grid.Len()+1)
}

func TestPath_Line(t *testing.T) {
	line := Path{{0, 0}, {1, 0}, {1, 2}}.Line(30)
	assert.Equal(t, orb.LineString{{15, 15}, {45, 15}, {45, 75}}, line)
}
