package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kire256/levelforge/grid"
)

func TestPrecedence(t *testing.T) {
	g := grid.New()
	require.NoError(t, g.Set(0, 0, grid.Solid))
	require.NoError(t, g.Set(1, 0, grid.Hazard))
	require.NoError(t, g.Set(2, 0, grid.Oneway))
	require.NoError(t, g.Set(3, 0, grid.Ladder))
	require.NoError(t, g.Set(4, 0, grid.Goal))
	require.NoError(t, g.Set(5, 0, grid.Start))
	require.NoError(t, g.Set(6, 0, grid.Solid|grid.Hazard)) // SOLID wins over HAZARD

	ids := DefaultTileIds()
	ids.GoalMarker = 9
	ids.StartMarker = 8
	m := New(ids)
	out := m.Convert(g)

	assert.Equal(t, ids.SolidBase, out[0][0])
	assert.Equal(t, ids.Hazard, out[0][1])
	assert.Equal(t, ids.Oneway, out[0][2])
	assert.Equal(t, ids.Ladder, out[0][3])
	assert.Equal(t, ids.GoalMarker, out[0][4])
	assert.Equal(t, ids.StartMarker, out[0][5])
	assert.Equal(t, ids.SolidBase, out[0][6])
	assert.Equal(t, ids.Empty, out[0][7])
}

func TestMarkersSkippedWhenZero(t *testing.T) {
	g := grid.New()
	require.NoError(t, g.Set(0, 0, grid.Goal))
	require.NoError(t, g.Set(1, 0, grid.Start))

	m := New(DefaultTileIds())
	out := m.Convert(g)
	assert.Equal(t, DefaultTileIds().Empty, out[0][0])
	assert.Equal(t, DefaultTileIds().Empty, out[0][1])
}

func TestNeighborMaskAndAutotiling(t *testing.T) {
	g := grid.New()
	require.NoError(t, g.Set(5, 5, grid.Solid))
	require.NoError(t, g.Set(5, 4, grid.Solid)) // north
	require.NoError(t, g.Set(6, 5, grid.Solid)) // east

	ids := DefaultTileIds()
	m := New(ids)
	mask := m.NeighborMask(g, 5, 5)
	assert.Equal(t, NeighborN|NeighborE, mask)

	ids.SolidVariants = map[int]int{NeighborN | NeighborE: 42}
	m2 := New(ids)
	out := m2.Convert(g)
	assert.Equal(t, 42, out[5][5])
}

func TestOutOfBoundsCountsAsSolid(t *testing.T) {
	g := grid.New()
	m := New(DefaultTileIds())
	mask := m.NeighborMask(g, 0, 0)
	assert.Equal(t, NeighborN|NeighborW, mask)
}
