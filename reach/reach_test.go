package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kire256/levelforge/grid"
)

func specR() PlayerSpec {
	return PlayerSpec{Width: 1, Height: 2, MaxJumpHeight: 4, MaxJumpDistance: 5, MaxSafeDrop: 6}
}

// R1: Hazard gap — solid floor at y=31 with a hazard strip the player must
// jump over.
func TestR1HazardGap(t *testing.T) {
	g := grid.New()
	g.ApplyRect(0, 31, grid.Width, 1, grid.Solid, grid.Overwrite)
	g.ApplyRect(14, 30, 4, 1, grid.Hazard, grid.Overwrite)
	require.NoError(t, g.Set(2, 30, grid.Start))
	require.NoError(t, g.Set(28, 30, grid.Goal))

	v := New(specR())
	report := v.Validate(g, nil, nil)
	assert.True(t, report.Reachable, "reasons: %v", report.Reasons)
	assert.GreaterOrEqual(t, report.JumpCount, 1)
}

// R2: Walled off — same as R1 plus a full-height solid wall that blocks
// every corridor.
func TestR2WalledOff(t *testing.T) {
	g := grid.New()
	g.ApplyRect(0, 31, grid.Width, 1, grid.Solid, grid.Overwrite)
	g.ApplyRect(14, 30, 4, 1, grid.Hazard, grid.Overwrite)
	g.ApplyRect(15, 1, 1, 30, grid.Solid, grid.Overwrite)
	require.NoError(t, g.Set(2, 30, grid.Start))
	require.NoError(t, g.Set(28, 30, grid.Goal))

	v := New(specR())
	report := v.Validate(g, nil, nil)
	assert.False(t, report.Reachable)
	assert.NotEmpty(t, report.Reasons)
}

// R3: Three stepped platforms climbing toward the goal.
func TestR3SteppedPlatforms(t *testing.T) {
	g := grid.New()
	g.ApplyRect(0, 31, grid.Width, 1, grid.Solid, grid.Overwrite)
	g.ApplyRect(5, 27, 6, 1, grid.Solid, grid.Overwrite)
	g.ApplyRect(13, 23, 6, 1, grid.Solid, grid.Overwrite)
	g.ApplyRect(21, 19, 6, 1, grid.Solid, grid.Overwrite)
	require.NoError(t, g.Set(2, 30, grid.Start))
	require.NoError(t, g.Set(25, 18, grid.Goal))

	v := New(specR())
	report := v.Validate(g, nil, nil)
	assert.True(t, report.Reachable, "reasons: %v", report.Reasons)
	assert.GreaterOrEqual(t, report.JumpCount, 3)
}

func TestMissingMarkers(t *testing.T) {
	t.Run("no start", func(t *testing.T) {
		g := grid.New()
		require.NoError(t, g.Set(5, 5, grid.Goal))
		report := New(specR()).Validate(g, nil, nil)
		assert.False(t, report.Reachable)
		assert.Contains(t, report.Reasons, "No START marker found")
	})

	t.Run("no goal", func(t *testing.T) {
		g := grid.New()
		require.NoError(t, g.Set(5, 5, grid.Start))
		report := New(specR()).Validate(g, nil, nil)
		assert.False(t, report.Reachable)
		assert.Contains(t, report.Reasons, "No GOAL marker found")
	})
}

func TestStartNotStandable(t *testing.T) {
	g := grid.New()
	// START floats in mid-air: no solid surface beneath it.
	require.NoError(t, g.Set(5, 5, grid.Start))
	require.NoError(t, g.Set(6, 5, grid.Goal))
	report := New(specR()).Validate(g, nil, nil)
	assert.False(t, report.Reachable)
	assert.Contains(t, report.Reasons[0], "not a valid standing position")
}

func TestStandableMask(t *testing.T) {
	g := grid.New()
	require.NoError(t, g.Set(3, 4, grid.Solid)) // surface beneath (3,3)
	v := New(specR())
	m := v.StandableMask(g)
	assert.True(t, m.has(Pos{3, 3}))
	assert.False(t, m.has(Pos{3, 4}))

	for x := 0; x < grid.Width; x++ {
		assert.False(t, m.has(Pos{x, grid.Height - 1}), "bottom row is never standable")
	}
}

func TestClearanceMask(t *testing.T) {
	g := grid.New()
	require.NoError(t, g.Set(3, 1, grid.Solid)) // blocks the head at y=2 for height=2
	v := New(specR())
	m := v.ClearanceMask(g)
	assert.False(t, m.has(Pos{3, 2}))
	assert.True(t, m.has(Pos{3, 5}))
	assert.False(t, m.has(Pos{3, 0}), "head leaving the top of the grid fails clearance")
}

func TestHazardDoesNotBlockFlyingThrough(t *testing.T) {
	// HAZARD only disqualifies landing/standing; flying over it is fine as
	// long as the corridor's body rows stay Solid-free.
	g := grid.New()
	g.ApplyRect(0, 31, grid.Width, 1, grid.Solid, grid.Overwrite)
	g.ApplyRect(10, 30, 3, 1, grid.Hazard, grid.Overwrite)
	require.NoError(t, g.Set(5, 30, grid.Start))
	require.NoError(t, g.Set(15, 30, grid.Goal))

	report := New(specR()).Validate(g, nil, nil)
	assert.True(t, report.Reachable, "reasons: %v", report.Reasons)
}
