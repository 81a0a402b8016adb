package refine

import (
	"github.com/kire256/levelforge/grid"
	"github.com/kire256/levelforge/reach"
)

// findSeams locates standable rect-boundary cells reachable from START on
// the full, unmodified grid: a left-edge entry and a right-edge exit.
// Preference goes to the boundary cell closest to the rect's vertical
// midpoint; if one side yields no candidate, any reachable boundary cell is
// used as a fallback.
func findSeams(g *grid.Grid, rect Rect, v *reach.Validator) (*reach.Pos, *reach.Pos) {
	sx, sy, ok := g.FindFlag(grid.Start)
	if !ok {
		return nil, nil
	}
	start := reach.Pos{X: sx, Y: sy}
	if !v.Valid(g, start) {
		return nil, nil
	}

	reachable := v.ReachableFrom(g, start)
	midY := (rect.Y + rect.Bottom()) / 2

	var leftCands, rightCands []reach.Pos
	for y := rect.Y; y <= rect.Bottom(); y++ {
		left := reach.Pos{X: rect.X, Y: y}
		if reachable[left] {
			leftCands = append(leftCands, left)
		}
		right := reach.Pos{X: rect.Right(), Y: y}
		if reachable[right] {
			rightCands = append(rightCands, right)
		}
	}

	seamEntry := closestToY(leftCands, midY)
	seamExit := closestToY(rightCands, midY)

	if seamEntry == nil || seamExit == nil {
		var topBot []reach.Pos
		for _, y := range []int{rect.Y, rect.Bottom()} {
			for x := rect.X; x <= rect.Right(); x++ {
				p := reach.Pos{X: x, Y: y}
				if reachable[p] {
					topBot = append(topBot, p)
				}
			}
		}
		all := dedupSortByX(append(append(append([]reach.Pos{}, leftCands...), rightCands...), topBot...))
		if len(all) > 0 {
			if seamEntry == nil {
				seamEntry = &all[0]
			}
			if seamExit == nil {
				seamExit = &all[len(all)-1]
			}
		}
	}

	return seamEntry, seamExit
}

func closestToY(cands []reach.Pos, midY int) *reach.Pos {
	if len(cands) == 0 {
		return nil
	}
	best := cands[0]
	bestDist := absInt(best.Y - midY)
	for _, c := range cands[1:] {
		if d := absInt(c.Y - midY); d < bestDist {
			best, bestDist = c, d
		}
	}
	return &best
}

func dedupSortByX(cands []reach.Pos) []reach.Pos {
	seen := make(map[reach.Pos]bool, len(cands))
	var out []reach.Pos
	for _, c := range cands {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].X < out[j-1].X; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
