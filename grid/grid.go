// Package grid implements the fixed 32x32 semantic tile grid that underlies
// every level: a compact bitflag cell type, bulk region operators, and a
// bit-exact JSON serialisation format.
package grid

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Cell is an 8-bit set of semantic tile flags. Unused bits are always zero;
// every setter truncates its input to Mask before storing it.
type Cell uint8

const (
	Empty Cell = 0

	// Solid fully blocks movement.
	Solid Cell = 0x01
	// Oneway is passable from below, solid from above.
	Oneway Cell = 0x02
	// Hazard kills the player on contact.
	Hazard Cell = 0x04
	// Ladder is a climbable surface.
	Ladder Cell = 0x08
	// Goal marks the level exit / win condition.
	Goal Cell = 0x10
	// Start marks the player spawn point.
	Start Cell = 0x20

	// Mask is the union of every defined flag; cell writes are truncated to it.
	Mask Cell = Solid | Oneway | Hazard | Ladder | Goal | Start
)

// Has reports whether c contains every flag in f.
func (c Cell) Has(f Cell) bool { return c&f == f }

// Any reports whether c contains at least one flag in f.
func (c Cell) Any(f Cell) bool { return c&f != 0 }

const (
	// Width is the fixed grid width, in columns.
	Width = 32
	// Height is the fixed grid height, in rows. Row 0 is the top; y
	// increases downward.
	Height = 32
)

// ErrOutOfBounds is returned by cell accessors when (x, y) falls outside
// [0, Width) x [0, Height). It indicates a programming error at the call
// site, not a recoverable runtime condition.
var ErrOutOfBounds = errors.New("grid: coordinate out of bounds")

// ErrSerialization is returned by FromSerialized when the payload's declared
// dimensions or decoded cell count don't match the fixed 32x32 grid.
var ErrSerialization = errors.New("grid: serialization mismatch")

// Mode selects how ApplyRect combines new flags with existing cell content.
type Mode int

const (
	// Overwrite replaces the cell's value outright.
	Overwrite Mode = iota
	// Add ORs the flags into the existing value.
	Add
	// Remove clears the flags from the existing value.
	Remove
)

// Grid is a fixed 32x32 row-major array of Cell. The zero value is a grid of
// all-Empty cells, ready to use.
type Grid struct {
	cells [Width * Height]Cell
}

// New returns an empty 32x32 grid.
func New() *Grid {
	return &Grid{}
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

func index(x, y int) int { return y*Width + x }

// Get returns the flags stored at (x, y).
func (g *Grid) Get(x, y int) (Cell, error) {
	if !inBounds(x, y) {
		return Empty, errors.Wrapf(ErrOutOfBounds, "get(%d, %d)", x, y)
	}
	return g.cells[index(x, y)], nil
}

// MustGet is like Get but panics on out-of-bounds access. It exists for
// internal call sites that have already range-checked their coordinates and
// would treat ErrOutOfBounds as an invariant violation anyway.
func (g *Grid) MustGet(x, y int) Cell {
	c, err := g.Get(x, y)
	if err != nil {
		panic(err)
	}
	return c
}

// Set overwrites the cell at (x, y) with flags, truncated to Mask.
func (g *Grid) Set(x, y int, flags Cell) error {
	if !inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "set(%d, %d)", x, y)
	}
	g.cells[index(x, y)] = flags & Mask
	return nil
}

// AddFlags ORs flags into the cell at (x, y).
func (g *Grid) AddFlags(x, y int, flags Cell) error {
	if !inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "add_flags(%d, %d)", x, y)
	}
	idx := index(x, y)
	g.cells[idx] = (g.cells[idx] | flags) & Mask
	return nil
}

// RemoveFlags clears flags from the cell at (x, y).
func (g *Grid) RemoveFlags(x, y int, flags Cell) error {
	if !inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "remove_flags(%d, %d)", x, y)
	}
	idx := index(x, y)
	g.cells[idx] = g.cells[idx] &^ (flags & Mask)
	return nil
}

// Fill overwrites every cell with flags.
func (g *Grid) Fill(flags Cell) {
	v := flags & Mask
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Clear zeroes every cell; equivalent to Fill(Empty).
func (g *Grid) Clear() {
	g.Fill(Empty)
}

// Copy returns a deep, independent copy of g.
func (g *Grid) Copy() *Grid {
	cp := &Grid{}
	cp.cells = g.cells
	return cp
}

// Equal reports whether g and other match byte-exactly across all 1024
// cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	return g.cells == other.cells
}

// ApplyRect applies flags to the rectangle with top-left (x, y), width w,
// height h, combined according to mode. Cells outside the grid are silently
// skipped; the operation never fails on an out-of-bounds rectangle.
func (g *Grid) ApplyRect(x, y, w, h int, flags Cell, mode Mode) {
	f := flags & Mask
	for ry := y; ry < y+h; ry++ {
		if ry < 0 || ry >= Height {
			continue
		}
		for rx := x; rx < x+w; rx++ {
			if rx < 0 || rx >= Width {
				continue
			}
			idx := index(rx, ry)
			switch mode {
			case Overwrite:
				g.cells[idx] = f
			case Add:
				g.cells[idx] = (g.cells[idx] | f) & Mask
			case Remove:
				g.cells[idx] = g.cells[idx] &^ f
			}
		}
	}
}

// FindFlag returns the coordinates of the first cell (row-major) carrying
// every flag in f, and reports whether one was found.
func (g *Grid) FindFlag(f Cell) (x, y int, ok bool) {
	for gy := 0; gy < Height; gy++ {
		for gx := 0; gx < Width; gx++ {
			if g.cells[index(gx, gy)].Has(f) {
				return gx, gy, true
			}
		}
	}
	return 0, 0, false
}

// Serialized is the bit-exact, cross-version wire format for a Grid.
type Serialized struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  string `json:"cells"`
}

// ToSerialized returns the bit-exact serialised form of g: fixed 32x32
// dimensions and the 1024 row-major cell bytes, base64-encoded.
func (g *Grid) ToSerialized() Serialized {
	raw := make([]byte, Width*Height)
	for i, c := range g.cells {
		raw[i] = byte(c)
	}
	return Serialized{
		Width:  Width,
		Height: Height,
		Cells:  base64.StdEncoding.EncodeToString(raw),
	}
}

// MarshalJSON implements json.Marshaler via ToSerialized.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.ToSerialized())
}

// FromSerialized decodes s into a new Grid. It fails with ErrSerialization
// when the declared dimensions aren't 32x32 or the decoded payload isn't
// exactly Width*Height bytes.
func FromSerialized(s Serialized) (*Grid, error) {
	if s.Width != Width || s.Height != Height {
		return nil, errors.Wrapf(ErrSerialization, "expected %dx%d grid, got %dx%d", Width, Height, s.Width, s.Height)
	}
	raw, err := base64.StdEncoding.DecodeString(s.Cells)
	if err != nil {
		return nil, errors.Wrap(ErrSerialization, err.Error())
	}
	if len(raw) != Width*Height {
		return nil, errors.Wrapf(ErrSerialization, "expected %d bytes, got %d", Width*Height, len(raw))
	}
	g := &Grid{}
	for i, b := range raw {
		g.cells[i] = Cell(b) & Mask
	}
	return g, nil
}

// UnmarshalJSON implements json.Unmarshaler via FromSerialized.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var s Serialized
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := FromSerialized(s)
	if err != nil {
		return err
	}
	g.cells = decoded.cells
	return nil
}

// String returns a short human-readable summary, not the full grid.
func (g *Grid) String() string {
	nonEmpty := 0
	for _, c := range g.cells {
		if c != Empty {
			nonEmpty++
		}
	}
	return fmt.Sprintf("Grid(%dx%d, %d non-empty cells)", Width, Height, nonEmpty)
}
