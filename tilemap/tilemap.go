// Package tilemap converts a semantic grid into a grid of renderer-facing
// tile IDs, with flag precedence and optional 4-neighbor autotiling for
// Solid cells.
package tilemap

import "github.com/kire256/levelforge/grid"

// Neighbor bitmask constants for 4-neighbor autotiling. Each bit is set when
// that neighbour is Solid; out-of-bounds neighbours count as Solid so grid
// edges never produce a seam tile.
const (
	NeighborN = 0b0001
	NeighborE = 0b0010
	NeighborS = 0b0100
	NeighborW = 0b1000
)

// TileIds is the tile-ID mapping used by a Mapper.
type TileIds struct {
	// SolidBase is used for every Solid cell when SolidVariants is empty,
	// and as the fallback for any bitmask absent from SolidVariants.
	SolidBase int
	// SolidVariants maps a 4-neighbour bitmask (0-15) to a tile ID. Leave
	// nil or empty to disable autotiling.
	SolidVariants map[int]int
	Oneway        int
	Hazard        int
	Ladder        int
	// StartMarker and GoalMarker render that cell as a distinct tile when
	// non-zero; zero (the default) leaves it as Empty.
	StartMarker int
	GoalMarker  int
	Empty       int
}

// DefaultTileIds returns a minimal tile set with autotiling disabled and no
// dedicated marker tiles.
func DefaultTileIds() TileIds {
	return TileIds{
		SolidBase: 1,
		Oneway:    2,
		Hazard:    3,
		Ladder:    4,
	}
}

// Mapper converts semantic grids to tile-ID grids under a fixed TileIds
// configuration. It holds no mutable state and is safe to share across
// goroutines.
type Mapper struct {
	Ids TileIds
}

// New returns a Mapper for the given tile IDs.
func New(ids TileIds) *Mapper {
	return &Mapper{Ids: ids}
}

// Convert returns a row-major [grid.Height][grid.Width] tile-ID grid.
func (m *Mapper) Convert(g *grid.Grid) [grid.Height][grid.Width]int {
	var out [grid.Height][grid.Width]int
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			out[y][x] = m.resolve(g, x, y)
		}
	}
	return out
}

func (m *Mapper) resolve(g *grid.Grid, x, y int) int {
	flags := g.MustGet(x, y)
	t := m.Ids
	switch {
	case flags.Has(grid.Solid):
		return m.solidTile(g, x, y)
	case flags.Has(grid.Hazard):
		return t.Hazard
	case flags.Has(grid.Oneway):
		return t.Oneway
	case flags.Has(grid.Ladder):
		return t.Ladder
	case flags.Has(grid.Goal) && t.GoalMarker != 0:
		return t.GoalMarker
	case flags.Has(grid.Start) && t.StartMarker != 0:
		return t.StartMarker
	default:
		return t.Empty
	}
}

func (m *Mapper) solidTile(g *grid.Grid, x, y int) int {
	t := m.Ids
	if len(t.SolidVariants) == 0 {
		return t.SolidBase
	}
	mask := m.NeighborMask(g, x, y)
	if id, ok := t.SolidVariants[mask]; ok {
		return id
	}
	return t.SolidBase
}

// NeighborMask returns the 4-neighbour Solid bitmask for (x, y). Exported
// for callers building a custom SolidVariants table or debugging autotiling.
// Out-of-bounds positions count as Solid.
func (m *Mapper) NeighborMask(g *grid.Grid, x, y int) int {
	isSolid := func(nx, ny int) bool {
		if nx < 0 || nx >= grid.Width || ny < 0 || ny >= grid.Height {
			return true
		}
		return g.MustGet(nx, ny).Has(grid.Solid)
	}

	mask := 0
	if isSolid(x, y-1) {
		mask |= NeighborN
	}
	if isSolid(x+1, y) {
		mask |= NeighborE
	}
	if isSolid(x, y+1) {
		mask |= NeighborS
	}
	if isSolid(x-1, y) {
		mask |= NeighborW
	}
	return mask
}
