package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kire256/levelforge/reach"
)

func TestG1DefaultKnobsSeed42(t *testing.T) {
	gen := New(nil)
	res, err := gen.Generate(42, DefaultKnobs(), reach.DefaultPlayerSpec())
	require.NoError(t, err)
	assert.True(t, res.Report.Reachable, "reasons: %v", res.Report.Reasons)
	assert.Len(t, res.Footholds, DefaultKnobs().TargetFootholdCount)
}

func TestG2HighVerticalitySeed100(t *testing.T) {
	knobs := DefaultKnobs()
	knobs.Verticality = 0.9
	knobs.TargetFootholdCount = 10

	gen := New(nil)
	res, err := gen.Generate(100, knobs, reach.DefaultPlayerSpec())
	require.NoError(t, err)
	assert.True(t, res.Report.Reachable, "reasons: %v", res.Report.Reasons)
}

func TestG3HighDifficultySeed777(t *testing.T) {
	knobs := DefaultKnobs()
	knobs.Difficulty = 0.8
	knobs.MinFootholdWidth = 2

	gen := New(nil)
	res, err := gen.Generate(777, knobs, reach.DefaultPlayerSpec())
	require.NoError(t, err)
	assert.True(t, res.Report.Reachable, "reasons: %v", res.Report.Reasons)
}

// Invariant 1: determinism — identical inputs yield an identical grid.
func TestDeterminism(t *testing.T) {
	gen := New(nil)
	res1, err1 := gen.Generate(1234, DefaultKnobs(), reach.DefaultPlayerSpec())
	res2, err2 := gen.Generate(1234, DefaultKnobs(), reach.DefaultPlayerSpec())
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, res1.Grid.Equal(res2.Grid))
	assert.Equal(t, res1.SeedUsed, res2.SeedUsed)
}

// Invariant 2: every successful generation is reachable per its own report.
func TestGeneratedLevelsAreReachable(t *testing.T) {
	gen := New(nil)
	for _, seed := range []int64{1, 2, 3, 17, 99} {
		res, err := gen.Generate(seed, DefaultKnobs(), reach.DefaultPlayerSpec())
		require.NoError(t, err)
		assert.True(t, res.Report.Reachable, "seed=%d reasons=%v", seed, res.Report.Reasons)
	}
}

// Invariant 3: first foothold starts near the left edge, last reaches GoalXMin.
func TestFootholdBounds(t *testing.T) {
	gen := New(nil)
	res, err := gen.Generate(42, DefaultKnobs(), reach.DefaultPlayerSpec())
	require.NoError(t, err)

	first := res.Footholds[0]
	last := res.Footholds[len(res.Footholds)-1]
	assert.GreaterOrEqual(t, first.X, 2)
	assert.LessOrEqual(t, first.X, 5)
	assert.GreaterOrEqual(t, last.X, GoalXMin)
}

// Invariant 4: the foothold count matches the requested target.
func TestFootholdCountMatchesKnobs(t *testing.T) {
	knobs := DefaultKnobs()
	knobs.TargetFootholdCount = 12

	gen := New(nil)
	res, err := gen.Generate(55, knobs, reach.DefaultPlayerSpec())
	require.NoError(t, err)
	assert.Len(t, res.Footholds, 12)
}

func TestMinDxForProgress(t *testing.T) {
	assert.Equal(t, 1, MinDxForProgress(10, 0, 26, 5))
	assert.Equal(t, 1, MinDxForProgress(30, 4, 26, 5))
	assert.Equal(t, 4, MinDxForProgress(2, 6, 26, 5)) // ceil(24/6)=4
	assert.Equal(t, 5, MinDxForProgress(2, 2, 26, 5)) // ceil(24/2)=12, capped at maxDx=5
}
