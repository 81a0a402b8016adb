package refine

import (
	"github.com/kire256/levelforge/generate"
	"github.com/kire256/levelforge/grid"
	"github.com/kire256/levelforge/rng"
)

// smoothSilhouette removes isolated Solid tiles along rect's top row: a
// Solid cell with no Solid neighbour on either side is treated as a stray
// spike and cleared.
func smoothSilhouette(g *grid.Grid, rect Rect) {
	topY := rect.Y
	for fx := rect.X; fx <= rect.Right(); fx++ {
		if !g.MustGet(fx, topY).Has(grid.Solid) {
			continue
		}
		leftSolid := fx > rect.X && g.MustGet(fx-1, topY).Has(grid.Solid)
		rightSolid := fx < rect.Right() && g.MustGet(fx+1, topY).Has(grid.Solid)
		if !leftSolid && !rightSolid {
			_ = g.RemoveFlags(fx, topY, grid.Solid)
		}
	}
}

// addSecret attempts to place one hidden bonus platform well above a
// randomly chosen foothold of the inner chain. It is best-effort: failure
// to find a non-conflicting spot within a bounded number of tries leaves
// the grid unchanged.
func addSecret(g *grid.Grid, footholds []generate.Foothold, rect Rect, source *rng.Source, height int) {
	if len(footholds) == 0 {
		return
	}
	base := footholds[source.Intn(len(footholds))]

	for try := 0; try < 20; try++ {
		sx := base.X + source.IntRange(-1, 1)
		sy := base.Y - source.IntRange(3, 5)
		sw := source.IntRange(2, 3)

		if sx < rect.X || sx+sw-1 > rect.Right() {
			continue
		}
		if sy < rect.Y+height || sy+1 > rect.Bottom() {
			continue
		}

		secret := generate.Foothold{X: sx, Y: sy, Width: sw}
		if generate.ClearanceConflict(footholds, secret, height) {
			continue
		}

		sSurface := secret.SurfaceY()
		for _, fx := range secret.Cols() {
			if rect.X <= fx && fx <= rect.Right() && rect.Y <= sSurface && sSurface <= rect.Bottom() {
				_ = g.AddFlags(fx, sSurface, grid.Solid)
			}
		}
		lo, hi := secret.ClearanceRows(height)
		for _, fx := range secret.Cols() {
			for row := lo; row <= hi; row++ {
				if rect.X <= fx && fx <= rect.Right() && rect.Y <= row && row <= rect.Bottom() {
					_ = g.RemoveFlags(fx, row, grid.Solid)
				}
			}
		}
		return
	}
}
