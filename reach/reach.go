// Package reach implements the reachability validator: given a grid and a
// player movement model, it decides whether GOAL is reachable from START and
// reports diagnostics either way.
package reach

import (
	"fmt"

	"github.com/kelindar/bitmap"

	"github.com/kire256/levelforge/grid"
)

// PlayerSpec describes the player's movement envelope.
type PlayerSpec struct {
	// Width is reserved for future use; the validator treats the player as
	// one column wide regardless of its value.
	Width int
	// Height is the number of body rows, feet row inclusive.
	Height int
	// MaxJumpHeight is the maximum rows climbed upward in a single move.
	MaxJumpHeight int
	// MaxJumpDistance is the maximum column delta in a single move.
	MaxJumpDistance int
	// MaxSafeDrop is the maximum rows dropped downward in a single move.
	MaxSafeDrop int
}

// DefaultPlayerSpec returns the conventional default movement envelope used
// throughout the generator and its tests.
func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Width:           1,
		Height:          2,
		MaxJumpHeight:   4,
		MaxJumpDistance: 5,
		MaxSafeDrop:     6,
	}
}

// Pos is a grid coordinate; X is the column, Y the row (increasing downward).
type Pos struct {
	X, Y int
}

func (p Pos) idx() uint32 { return uint32(p.Y*grid.Width + p.X) }

// Report is the outcome of a single Validate call.
type Report struct {
	Reachable        bool
	PathLength       int
	JumpCount        int
	MinLandingWidth  int
	Reasons          []string
	Path             []Pos
}

// Validator holds the player spec used across repeated Validate calls. It
// carries no mutable state of its own, so a single Validator is safe to
// reuse (or share) across concurrent calls.
type Validator struct {
	Spec PlayerSpec
}

// New returns a Validator for the given player spec.
func New(spec PlayerSpec) *Validator {
	return &Validator{Spec: spec}
}

// mask is a packed-boolean 32x32 grid backed by a bitmap.Bitmap, used for
// the standable, clearance and combined valid masks. The BFS visited set is
// a plain map.
type mask struct {
	bits bitmap.Bitmap
}

func newMask() *mask {
	m := &mask{}
	m.bits.Grow(grid.Width*grid.Height - 1)
	return m
}

func (m *mask) set(p Pos)      { m.bits.Set(p.idx()) }
func (m *mask) has(p Pos) bool { return m.bits.Contains(p.idx()) }

// StandableMask computes S[x,y]: true iff the tile below is a walkable
// surface (Solid or Oneway) and the feet tile itself is neither Solid nor
// Hazard. The bottom row is never standable (there is no row beneath it).
func (v *Validator) StandableMask(g *grid.Grid) *mask {
	m := newMask()
	for y := 0; y < grid.Height-1; y++ {
		for x := 0; x < grid.Width; x++ {
			below := g.MustGet(x, y+1)
			feet := g.MustGet(x, y)
			if below.Any(grid.Solid|grid.Oneway) && !feet.Any(grid.Solid|grid.Hazard) {
				m.set(Pos{x, y})
			}
		}
	}
	return m
}

// ClearanceMask computes C[x,y]: true iff every body row from y upward
// through y-height+1 is in-bounds and Solid-free.
func (v *Validator) ClearanceMask(g *grid.Grid) *mask {
	m := newMask()
	h := v.Spec.Height
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			ok := true
			for dh := 0; dh < h; dh++ {
				ny := y - dh
				if ny < 0 || g.MustGet(x, ny).Has(grid.Solid) {
					ok = false
					break
				}
			}
			if ok {
				m.set(Pos{x, y})
			}
		}
	}
	return m
}

func validMask(standable, clearance *mask) *mask {
	m := newMask()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := Pos{x, y}
			if standable.has(p) && clearance.has(p) {
				m.set(p)
			}
		}
	}
	return m
}

// bodyClear reports whether every body row at column x through the player's
// height above row y is free of Solid. Out-of-bounds rows count as clear.
func bodyClear(g *grid.Grid, x, y, height int) bool {
	for dh := 0; dh < height; dh++ {
		cy := y - dh
		if cy < 0 || cy >= grid.Height || x < 0 || x >= grid.Width {
			continue
		}
		if g.MustGet(x, cy).Has(grid.Solid) {
			return false
		}
	}
	return true
}

// corridorOK is the conservative linear-sweep corridor predicate: it checks
// that a straight interpolated path between two positions never crosses a
// Solid tile at body height.
func corridorOK(g *grid.Grid, height, x1, y1, x2, y2 int) bool {
	dx := x2 - x1
	if dx == 0 {
		lo, hi := y1, y2
		if lo > hi {
			lo, hi = hi, lo
		}
		for cy := lo; cy <= hi; cy++ {
			if !bodyClear(g, x1, cy, height) {
				return false
			}
		}
		return true
	}

	step := 1
	if dx < 0 {
		step = -1
	}
	for ix := x1; ; ix += step {
		t := float64(ix-x1) / float64(dx)
		iy := int(roundHalfAwayFromZero(float64(y1) + t*float64(y2-y1)))
		if !bodyClear(g, ix, iy, height) {
			return false
		}
		if ix == x2 {
			break
		}
	}
	return true
}

func roundHalfAwayFromZero(f float64) float64 {
	if f >= 0 {
		return float64(int(f + 0.5))
	}
	return float64(int(f - 0.5))
}

// neighbors enumerates every valid, corridor-reachable target from pos.
func (v *Validator) neighbors(g *grid.Grid, valid *mask, pos Pos) []Pos {
	var out []Pos
	spec := v.Spec
	for dx := -spec.MaxJumpDistance; dx <= spec.MaxJumpDistance; dx++ {
		for dy := -spec.MaxJumpHeight; dy <= spec.MaxSafeDrop; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x2, y2 := pos.X+dx, pos.Y+dy
			if x2 < 0 || x2 >= grid.Width || y2 < 0 || y2 >= grid.Height {
				continue
			}
			target := Pos{x2, y2}
			if !valid.has(target) {
				continue
			}
			if corridorOK(g, spec.Height, pos.X, pos.Y, x2, y2) {
				out = append(out, target)
			}
		}
	}
	return out
}

// Validate determines whether goal is reachable from start on g. When start
// or goal is nil, the validator scans the grid (row-major) for the first
// Start/Goal-flagged cell.
func (v *Validator) Validate(g *grid.Grid, start, goal *Pos) Report {
	var reasons []string

	startPos, startOK := resolvePos(g, start, grid.Start)
	goalPos, goalOK := resolvePos(g, goal, grid.Goal)
	if !startOK {
		reasons = append(reasons, "No START marker found")
	}
	if !goalOK {
		reasons = append(reasons, "No GOAL marker found")
	}
	if len(reasons) > 0 {
		return Report{Reachable: false, Reasons: reasons}
	}

	standable := v.StandableMask(g)
	clearance := v.ClearanceMask(g)
	valid := validMask(standable, clearance)

	if !valid.has(startPos) {
		reasons = append(reasons, fmt.Sprintf("START (%d, %d) is not a valid standing position", startPos.X, startPos.Y))
	}
	if !valid.has(goalPos) {
		reasons = append(reasons, fmt.Sprintf("GOAL (%d, %d) is not a valid standing position", goalPos.X, goalPos.Y))
	}
	if len(reasons) > 0 {
		return Report{Reachable: false, Reasons: reasons}
	}

	path, reachableCount := v.bfs(g, valid, startPos, goalPos)
	if path == nil {
		return Report{
			Reachable: false,
			Reasons:   v.diagnose(startPos, goalPos, reachableCount),
		}
	}

	return Report{
		Reachable:       true,
		Path:            path,
		PathLength:      len(path),
		JumpCount:       countJumps(path),
		MinLandingWidth: minLandingWidth(valid, path),
	}
}

func resolvePos(g *grid.Grid, override *Pos, flag grid.Cell) (Pos, bool) {
	if override != nil {
		return *override, true
	}
	x, y, ok := g.FindFlag(flag)
	return Pos{x, y}, ok
}

func (v *Validator) bfs(g *grid.Grid, valid *mask, start, goal Pos) ([]Pos, int) {
	parent := map[Pos]Pos{start: start}
	visited := map[Pos]bool{start: true}
	queue := []Pos{start}

	for len(queue) > 0 {
		front := queue[0]
		queue = queue[1:]
		if front == goal {
			return reconstruct(parent, start, goal), len(visited)
		}
		for _, next := range v.neighbors(g, valid, front) {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = front
			queue = append(queue, next)
		}
	}
	return nil, len(visited)
}

func reconstruct(parent map[Pos]Pos, start, goal Pos) []Pos {
	var path []Pos
	node := goal
	for {
		path = append(path, node)
		if node == start {
			break
		}
		node = parent[node]
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func countJumps(path []Pos) int {
	n := 0
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		dx := b.X - a.X
		if dx < 0 {
			dx = -dx
		}
		if b.Y != a.Y || dx > 1 {
			n++
		}
	}
	return n
}

func minLandingWidth(valid *mask, path []Pos) int {
	minW := grid.Width
	for _, p := range path {
		lo, hi := p.X, p.X
		for lo > 0 && valid.has(Pos{lo - 1, p.Y}) {
			lo--
		}
		for hi < grid.Width-1 && valid.has(Pos{hi + 1, p.Y}) {
			hi++
		}
		if w := hi - lo + 1; w < minW {
			minW = w
		}
	}
	return minW
}

// diagnose reports the size of the reachable set found by the failed BFS
// (reachableCount) and heuristic causes for the lack of a path, computed
// from the START/GOAL deltas.
func (v *Validator) diagnose(start, goal Pos, reachableCount int) []string {
	spec := v.Spec
	hGap := abs(goal.X - start.X)
	vUp := start.Y - goal.Y   // positive: goal is higher
	vDown := goal.Y - start.Y // positive: goal is lower

	msgs := []string{
		fmt.Sprintf("GOAL (%d, %d) unreachable from START (%d, %d)", goal.X, goal.Y, start.X, start.Y),
		fmt.Sprintf("%d valid position(s) reachable from START", reachableCount),
	}
	if hGap > spec.MaxJumpDistance {
		msgs = append(msgs, fmt.Sprintf("Horizontal gap ~%d > max_jump_distance %d", hGap, spec.MaxJumpDistance))
	}
	if vUp > spec.MaxJumpHeight {
		msgs = append(msgs, fmt.Sprintf("Height gain ~%d > max_jump_height %d", vUp, spec.MaxJumpHeight))
	}
	if vDown > spec.MaxSafeDrop {
		msgs = append(msgs, fmt.Sprintf("Drop ~%d > max_safe_drop %d", vDown, spec.MaxSafeDrop))
	}
	return msgs
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ReachableFrom returns the full set of positions reachable from start under
// v's movement model. It is exported for callers (region refinement) that
// need the reachable set directly rather than a single START→GOAL report.
func (v *Validator) ReachableFrom(g *grid.Grid, start Pos) map[Pos]bool {
	standable := v.StandableMask(g)
	clearance := v.ClearanceMask(g)
	valid := validMask(standable, clearance)

	visited := map[Pos]bool{start: true}
	queue := []Pos{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range v.neighbors(g, valid, cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}

// Valid reports whether pos is both standable and clear on g under v's spec.
func (v *Validator) Valid(g *grid.Grid, pos Pos) bool {
	standable := v.StandableMask(g)
	clearance := v.ClearanceMask(g)
	return standable.has(pos) && clearance.has(pos)
}
