package refine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kire256/levelforge/generate"
	"github.com/kire256/levelforge/grid"
	"github.com/kire256/levelforge/reach"
)

func baseGrid(t *testing.T) *grid.Grid {
	t.Helper()
	gen := generate.New(nil)
	res, err := gen.Generate(42, generate.DefaultKnobs(), reach.DefaultPlayerSpec())
	require.NoError(t, err)
	return res.Grid
}

var testRect = Rect{X: 7, Y: 4, W: 16, H: 24}

func TestC1Basic(t *testing.T) {
	g := baseGrid(t)
	rf := New(nil)
	newGrid, report := rf.Refine(g, testRect, Request{}, 100, generate.DefaultKnobs(), reach.DefaultPlayerSpec())

	require.True(t, report.Success, "reasons: %v", report.Reasons)
	assert.NotNil(t, report.SeamEntry)
	assert.NotNil(t, report.SeamExit)
	assert.True(t, report.Reachability.Reachable)

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if testRect.Contains(x, y) {
				continue
			}
			want, _ := g.Get(x, y)
			got, _ := newGrid.Get(x, y)
			assert.Equal(t, want, got, "cell (%d,%d) outside rect changed", x, y)
		}
	}
}

func TestC2Harder(t *testing.T) {
	g := baseGrid(t)
	rf := New(nil)
	req := Request{DifficultyDelta: 0.5, VerticalityDelta: 0.4}
	_, report := rf.Refine(g, testRect, req, 200, generate.DefaultKnobs(), reach.DefaultPlayerSpec())

	require.True(t, report.Success, "reasons: %v", report.Reasons)
	assert.True(t, report.Reachability.Reachable)
}

func TestC3Secret(t *testing.T) {
	g := baseGrid(t)
	rf := New(nil)
	req := Request{AddSecret: true}
	newGrid, report := rf.Refine(g, testRect, req, 300, generate.DefaultKnobs(), reach.DefaultPlayerSpec())

	require.True(t, report.Success, "reasons: %v", report.Reasons)
	assert.True(t, report.Reachability.Reachable)

	found := false
	for y := testRect.Y; y <= testRect.Bottom(); y++ {
		for x := testRect.X; x <= testRect.Right(); x++ {
			if c, _ := newGrid.Get(x, y); c.Has(grid.Solid) {
				found = true
			}
		}
	}
	assert.True(t, found, "expected at least one SOLID cell inside rect")
}

func TestC4Smooth(t *testing.T) {
	g := baseGrid(t)
	rf := New(nil)
	req := Request{SmoothSilhouette: true}
	newGrid, report := rf.Refine(g, testRect, req, 400, generate.DefaultKnobs(), reach.DefaultPlayerSpec())

	require.True(t, report.Success, "reasons: %v", report.Reasons)
	assert.True(t, report.Reachability.Reachable)

	topY := testRect.Y
	for x := testRect.X; x <= testRect.Right(); x++ {
		c, _ := newGrid.Get(x, topY)
		if !c.Has(grid.Solid) {
			continue
		}
		leftSolid := x > testRect.X
		if leftSolid {
			lc, _ := newGrid.Get(x-1, topY)
			leftSolid = lc.Has(grid.Solid)
		}
		rightSolid := x < testRect.Right()
		if rightSolid {
			rc, _ := newGrid.Get(x+1, topY)
			rightSolid = rc.Has(grid.Solid)
		}
		assert.True(t, leftSolid || rightSolid, "isolated SOLID spike at (%d,%d)", x, topY)
	}
}

// Invariant 6: seam_entry remains standable after a successful refinement.
func TestSeamEntryStaysStandable(t *testing.T) {
	g := baseGrid(t)
	rf := New(nil)
	newGrid, report := rf.Refine(g, testRect, Request{}, 100, generate.DefaultKnobs(), reach.DefaultPlayerSpec())
	require.True(t, report.Success)
	require.NotNil(t, report.SeamEntry)

	entry := *report.SeamEntry
	floor, _ := newGrid.Get(entry.X, entry.Y+1)
	feet, _ := newGrid.Get(entry.X, entry.Y)
	assert.True(t, floor.Has(grid.Solid), "seam entry floor should stay SOLID")
	assert.False(t, feet.Has(grid.Solid), "seam entry feet row should stay SOLID-free")
}

func TestUnreachableOriginalFailsFast(t *testing.T) {
	g := grid.New()
	require.NoError(t, g.Set(2, 30, grid.Start))
	require.NoError(t, g.Set(28, 30, grid.Goal))
	// No floor at all: START/GOAL are not standable, so the base validate fails.

	rf := New(nil)
	_, report := rf.Refine(g, testRect, Request{}, 1, generate.DefaultKnobs(), reach.DefaultPlayerSpec())
	assert.False(t, report.Success)
	assert.Contains(t, report.Reasons, "Original grid is not reachable")
}
