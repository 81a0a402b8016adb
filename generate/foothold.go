package generate

// Foothold is a standable platform segment: a Solid surface at row y+1
// carrying the player at feet row y, over the column range [x, x+width).
type Foothold struct {
	X     int
	Y     int
	Width int
}

// SurfaceY is the row carrying the Solid tiles the player stands on.
func (f Foothold) SurfaceY() int { return f.Y + 1 }

// Right is the rightmost column, inclusive.
func (f Foothold) Right() int { return f.X + f.Width - 1 }

// Cols returns every column the foothold spans, left to right.
func (f Foothold) Cols() []int {
	cols := make([]int, f.Width)
	for i := range cols {
		cols[i] = f.X + i
	}
	return cols
}

// ClearanceRows returns the inclusive [lo, hi] row range that must stay
// Solid-free for a player of the given body height standing on this
// foothold: from the feet row y up through y-height+1.
func (f Foothold) ClearanceRows(height int) (lo, hi int) {
	return f.Y - height + 1, f.Y
}

// ClearanceConflict reports whether candidate's surface falls inside any of
// existing's clearance zones, or vice versa, among footholds that share at
// least one column. Exported so package refine can reuse the same
// non-conflict rule when placing footholds confined to a sub-rect.
func ClearanceConflict(existing []Foothold, candidate Foothold, height int) bool {
	candCols := colSet(candidate)
	candLo, candHi := candidate.ClearanceRows(height)

	for _, fh := range existing {
		if !overlaps(candCols, colSet(fh)) {
			continue
		}
		fhLo, fhHi := fh.ClearanceRows(height)
		if candidate.SurfaceY() >= fhLo && candidate.SurfaceY() <= fhHi {
			return true
		}
		if fh.SurfaceY() >= candLo && fh.SurfaceY() <= candHi {
			return true
		}
	}
	return false
}

func colSet(f Foothold) map[int]bool {
	m := make(map[int]bool, f.Width)
	for _, c := range f.Cols() {
		m[c] = true
	}
	return m
}

func overlaps(a, b map[int]bool) bool {
	for c := range a {
		if b[c] {
			return true
		}
	}
	return false
}
