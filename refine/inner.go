package refine

import (
	"math"

	"github.com/kire256/levelforge/generate"
	"github.com/kire256/levelforge/grid"
	"github.com/kire256/levelforge/reach"
	"github.com/kire256/levelforge/rng"
)

func applyDeltas(base generate.Knobs, req Request) generate.Knobs {
	return generate.Knobs{
		TargetFootholdCount: base.TargetFootholdCount,
		MinFootholdWidth:    base.MinFootholdWidth,
		MaxFootholdWidth:    base.MaxFootholdWidth,
		Verticality:         clamp01(base.Verticality + req.VerticalityDelta),
		Difficulty:          clamp01(base.Difficulty + req.DifficultyDelta),
	}
}

// generateInnerFootholds builds a foothold chain from entry to exit, every
// foothold confined to rect. The entry foothold is left-aligned at the seam
// column; the exit foothold is right-aligned at its seam column so the seam
// itself is always covered. Returns nil if any step exhausts its attempts.
func generateInnerFootholds(source *rng.Source, knobs generate.Knobs, spec reach.PlayerSpec, rect Rect, entry, exit reach.Pos) []generate.Foothold {
	dxTotal := exit.X - entry.X
	if dxTotal <= 0 {
		return nil
	}

	avgHop := maxInt(1, (spec.MaxJumpDistance+1)/2)
	nInter := maxInt(0, minInt(6, dxTotal/avgHop-1))

	entryWidth := minInt(
		maxInt(knobs.MinFootholdWidth, source.IntRange(knobs.MinFootholdWidth, knobs.MaxFootholdWidth)),
		rect.Right()-entry.X+1,
	)
	footholds := []generate.Foothold{{X: entry.X, Y: entry.Y, Width: entryWidth}}

	maxUp := maxInt(0, roundInt(float64(spec.MaxJumpHeight)*knobs.Verticality))
	maxDown := maxInt(0, roundInt(float64(spec.MaxSafeDrop)*knobs.Verticality))
	effMaxWidth := maxInt(knobs.MinFootholdWidth,
		knobs.MaxFootholdWidth-roundInt(knobs.Difficulty*float64(knobs.MaxFootholdWidth-knobs.MinFootholdWidth)))

	for step := 0; step < nInter; step++ {
		prev := footholds[len(footholds)-1]
		stepsLeft := nInter - step + 1
		targetX := exit.X

		progMin := generate.MinDxForProgress(prev.X, stepsLeft, targetX, spec.MaxJumpDistance)
		diffMin := roundInt(float64(spec.MaxJumpDistance) * 0.25 * knobs.Difficulty)
		minDx := minInt(maxInt(progMin, maxInt(diffMin, 1)), spec.MaxJumpDistance)

		placed := false
		for try := 0; try < generate.MaxStep; try++ {
			maxDx := minInt(spec.MaxJumpDistance, targetX-prev.X-1)
			if maxDx < minDx {
				break
			}

			dx := source.IntRange(minDx, maxDx)
			dy := 0
			if maxUp+maxDown > 0 {
				dy = source.IntRange(-maxUp, maxDown)
			}
			w := source.IntRange(knobs.MinFootholdWidth, effMaxWidth)
			nx, ny := prev.X+dx, prev.Y+dy

			if nx < rect.X || nx+w-1 > rect.Right() {
				continue
			}
			if ny < rect.Y+spec.Height {
				continue
			}
			if ny+1 > rect.Bottom() {
				continue
			}

			candidate := generate.Foothold{X: nx, Y: ny, Width: w}
			if generate.ClearanceConflict(footholds, candidate, spec.Height) {
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

	last := footholds[len(footholds)-1]
	exitWidth := minInt(
		maxInt(knobs.MinFootholdWidth, source.IntRange(knobs.MinFootholdWidth, knobs.MaxFootholdWidth)),
		exit.X-rect.X+1,
	)
	exitWidth = maxInt(1, exitWidth)
	exitX := exit.X - exitWidth + 1

	dyToExit := exit.Y - last.Y
	minJumpDx := maxInt(0, exitX-last.Right())
	if minJumpDx > spec.MaxJumpDistance {
		return nil
	}
	if dyToExit > spec.MaxSafeDrop {
		return nil
	}
	if dyToExit < -spec.MaxJumpHeight {
		return nil
	}

	exitFh := generate.Foothold{X: exitX, Y: exit.Y, Width: exitWidth}
	if generate.ClearanceConflict(footholds, exitFh, spec.Height) {
		return nil
	}
	footholds = append(footholds, exitFh)

	return footholds
}

// clearRect zeroes every cell inside rect.
func clearRect(g *grid.Grid, rect Rect) {
	g.ApplyRect(rect.X, rect.Y, rect.W, rect.H, grid.Mask, grid.Remove)
}

// paintInnerFootholds paints foothold surfaces and clears their headspace,
// clipped to rect, mirroring footholdsToGrid's surface/clearance phases.
func paintInnerFootholds(g *grid.Grid, footholds []generate.Foothold, rect Rect, height int) {
	type cell struct{ x, y int }
	surfaces := make(map[cell]bool)

	for _, fh := range footholds {
		sy := fh.SurfaceY()
		for _, fx := range fh.Cols() {
			if rect.X <= fx && fx <= rect.Right() && rect.Y <= sy && sy <= rect.Bottom() {
				_ = g.AddFlags(fx, sy, grid.Solid)
				surfaces[cell{fx, sy}] = true
			}
		}
	}

	for _, fh := range footholds {
		lo, hi := fh.ClearanceRows(height)
		for _, fx := range fh.Cols() {
			for row := lo; row <= hi; row++ {
				if fx < rect.X || fx > rect.Right() || row < rect.Y || row > rect.Bottom() {
					continue
				}
				if surfaces[cell{fx, row}] {
					continue
				}
				_ = g.RemoveFlags(fx, row, grid.Solid)
			}
		}
	}
}

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

func roundInt(f float64) int { return int(math.Round(f)) }
