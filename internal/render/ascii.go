// Package render prints a semantic grid as ASCII art for human inspection.
// It is demo/test support only: it carries none of the core invariants and
// is not part of the external contract.
package render

import (
	"strings"

	"github.com/kire256/levelforge/grid"
)

const (
	charSolid = '#'
	charOneway = '-'
	charHazard = '^'
	charLadder = 'H'
	charGoal   = 'G'
	charStart  = 'S'
	charEmpty  = '.'
)

// ASCII renders g as a grid.Height-line block of grid.Width characters,
// highest-precedence flag per cell winning the same way tilemap.Mapper
// resolves flags (Solid > Hazard > Oneway > Ladder > Goal > Start > empty).
func ASCII(g *grid.Grid) string {
	var b strings.Builder
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			b.WriteByte(charFor(g.MustGet(x, y)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func charFor(c grid.Cell) byte {
	switch {
	case c.Has(grid.Solid):
		return charSolid
	case c.Has(grid.Hazard):
		return charHazard
	case c.Has(grid.Oneway):
		return charOneway
	case c.Has(grid.Ladder):
		return charLadder
	case c.Has(grid.Goal):
		return charGoal
	case c.Has(grid.Start):
		return charStart
	default:
		return charEmpty
	}
}
