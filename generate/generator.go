// Package generate implements the foothold-chain level generator: it places
// a sequence of platforms enforcing forward progress, clearance
// non-conflict, and bounded jump geometry, then validates the result with
// package reach.
package generate

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/kire256/levelforge/grid"
	"github.com/kire256/levelforge/reach"
	"github.com/kire256/levelforge/rng"
)

const (
	// MaxOuter bounds whole-level generation retries.
	MaxOuter = 40
	// MaxStep bounds attempts to place a single foothold before aborting
	// the whole attempt.
	MaxStep = 50
	// GoalXMin is the minimum left edge the last foothold must reach.
	GoalXMin = 26
)

// ErrGenerationFailed is returned when every outer attempt failed to
// produce a reachable level.
var ErrGenerationFailed = errors.New("generate: exhausted all attempts")

// Result is the outcome of a successful Generate call.
type Result struct {
	Grid      *grid.Grid
	Footholds []Foothold
	Report    reach.Report
	SeedUsed  int64
	Attempts  int
}

// Generator produces validated levels from a seed, a set of tuning Knobs,
// and a player movement spec. It holds no mutable state and is safe to
// share across goroutines generating independent levels.
type Generator struct {
	Log *logrus.Logger
}

// New returns a Generator. log may be nil, in which case logging is
// discarded; logging never affects the deterministic output of Generate.
func New(log *logrus.Logger) *Generator {
	if log == nil {
		log = discardLogger()
	}
	return &Generator{Log: log}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Generate synthesises a validated level for (seed, knobs, spec). It retries
// up to MaxOuter times, reseeding seed+attempt each time, and fails with
// ErrGenerationFailed if none of the attempts produce a reachable grid.
func (gn *Generator) Generate(seed int64, knobs Knobs, spec reach.PlayerSpec) (*Result, error) {
	validator := reach.New(spec)

	for attempt := 0; attempt < MaxOuter; attempt++ {
		attemptSeed := seed + int64(attempt)
		source := rng.New(attemptSeed)

		footholds := generateFootholds(source, knobs, spec)
		if footholds == nil {
			gn.Log.WithFields(logrus.Fields{"seed": attemptSeed, "attempt": attempt}).
				Debug("generate: foothold placement failed, retrying")
			continue
		}

		g := footholdsToGrid(footholds, spec.Height)
		report := validator.Validate(g, nil, nil)
		if report.Reachable {
			gn.Log.WithFields(logrus.Fields{"seed": attemptSeed, "attempts": attempt + 1}).
				Debug("generate: produced a reachable level")
			return &Result{
				Grid:      g,
				Footholds: footholds,
				Report:    report,
				SeedUsed:  attemptSeed,
				Attempts:  attempt + 1,
			}, nil
		}
		gn.Log.WithFields(logrus.Fields{"seed": attemptSeed, "attempt": attempt, "reasons": report.Reasons}).
			Debug("generate: level unreachable, retrying")
	}

	gn.Log.WithFields(logrus.Fields{"seed": seed, "attempts": MaxOuter}).
		Warn("generate: exhausted all attempts")
	return nil, errors.Wrapf(ErrGenerationFailed, "seed=%d knobs=%+v after %d attempts", seed, knobs, MaxOuter)
}

// generateFootholds tries once to produce a complete, non-conflicting
// foothold chain. It returns nil if any step exhausts MaxStep candidates.
func generateFootholds(source *rng.Source, knobs Knobs, spec reach.PlayerSpec) []Foothold {
	midY := grid.Height / 2
	yLo := maxInt(spec.Height, midY-5)
	yHi := minInt(grid.Height-3, midY+5)

	firstY := source.IntRange(yLo, yHi)
	firstX := source.IntRange(2, 5)
	firstW := minInt(source.IntRange(knobs.MinFootholdWidth, knobs.MaxFootholdWidth), grid.Width-2-firstX)
	firstW = maxInt(knobs.MinFootholdWidth, firstW)

	footholds := []Foothold{{X: firstX, Y: firstY, Width: firstW}}

	n := knobs.TargetFootholdCount
	for i := 1; i < n; i++ {
		prev := footholds[len(footholds)-1]
		isLast := i == n-1

		progMin := MinDxForProgress(prev.X, n-i, GoalXMin, spec.MaxJumpDistance)
		diffMin := roundInt(float64(spec.MaxJumpDistance) * 0.25 * knobs.Difficulty)
		minDx := minInt(maxInt(progMin, maxInt(diffMin, 1)), spec.MaxJumpDistance)

		maxUp := maxInt(0, roundInt(float64(spec.MaxJumpHeight)*knobs.Verticality))
		maxDown := maxInt(0, roundInt(float64(spec.MaxSafeDrop)*knobs.Verticality))

		effMaxWidth := maxInt(knobs.MinFootholdWidth,
			knobs.MaxFootholdWidth-roundInt(knobs.Difficulty*float64(knobs.MaxFootholdWidth-knobs.MinFootholdWidth)))

		placed := false
		for try := 0; try < MaxStep; try++ {
			dx := source.IntRange(minDx, spec.MaxJumpDistance)
			dy := 0
			if maxUp+maxDown > 0 {
				dy = source.IntRange(-maxUp, maxDown)
			}
			w := source.IntRange(knobs.MinFootholdWidth, effMaxWidth)
			newX := prev.X + dx
			newY := prev.Y + dy

			if newX < 1 || newX+w-1 > grid.Width-2 {
				continue
			}
			if newY < spec.Height {
				continue
			}
			if newY+1 > grid.Height-2 {
				continue
			}
			if isLast && newX < GoalXMin {
				continue
			}
			candidate := Foothold{X: newX, Y: newY, Width: w}
			if ClearanceConflict(footholds, candidate, spec.Height) {
				continue
			}

			footholds = append(footholds, candidate)
			placed = true
			break
		}
		if !placed {
			return nil
		}
	}

	return footholds
}

// MinDxForProgress returns the minimum dx needed so the last foothold can
// still reach targetX within stepsRemaining hops, capped by maxDx. Exported
// so package refine can apply the same forward-progress rule inside a rect.
func MinDxForProgress(currentX, stepsRemaining, targetX, maxDx int) int {
	needed := targetX - currentX
	if needed <= 0 || stepsRemaining <= 0 {
		return 1
	}
	return maxInt(1, minInt(maxDx, ceilDiv(needed, stepsRemaining)))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// footholdsToGrid materialises a foothold chain into a grid: a safety floor,
// foothold surfaces, clearance carved out (never erasing another foothold's
// surface), then START/GOAL markers at the first/last foothold's centre.
func footholdsToGrid(footholds []Foothold, height int) *grid.Grid {
	g := grid.New()

	// Phase 1 — safety floor.
	g.ApplyRect(0, grid.Height-1, grid.Width, 1, grid.Solid, grid.Overwrite)

	// Phase 2 — surfaces.
	type cell struct{ x, y int }
	surfaces := make(map[cell]bool)
	for _, fh := range footholds {
		sy := fh.SurfaceY()
		for _, x := range fh.Cols() {
			if x >= 0 && x < grid.Width && sy >= 0 && sy < grid.Height {
				_ = g.AddFlags(x, sy, grid.Solid)
				surfaces[cell{x, sy}] = true
			}
		}
	}

	// Phase 3 — clearance, preserving recorded surfaces.
	for _, fh := range footholds {
		lo, hi := fh.ClearanceRows(height)
		for _, x := range fh.Cols() {
			for row := lo; row <= hi; row++ {
				if row < 0 || row >= grid.Height {
					continue
				}
				if surfaces[cell{x, row}] {
					continue
				}
				_ = g.RemoveFlags(x, row, grid.Solid)
			}
		}
	}

	// Phase 4 — markers.
	first, last := footholds[0], footholds[len(footholds)-1]
	_ = g.Set(first.X+first.Width/2, first.Y, grid.Start)
	_ = g.Set(last.X+last.Width/2, last.Y, grid.Goal)

	return g
}

func roundInt(f float64) int { return int(math.Round(f)) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
