package refine

import (
	"github.com/sirupsen/logrus"

	"github.com/kire256/levelforge/generate"
	"github.com/kire256/levelforge/grid"
	"github.com/kire256/levelforge/reach"
	"github.com/kire256/levelforge/rng"
)

// MaxInner bounds retries of a single refinement call.
const MaxInner = 30

// Report describes the outcome of a Refine call.
type Report struct {
	Success        bool
	SeamEntry      *reach.Pos
	SeamExit       *reach.Pos
	InnerFootholds int
	Reachability   reach.Report
	Reasons        []string
}

// Refiner regenerates rect-confined regions of an existing grid. It holds no
// mutable state and is safe to share across goroutines refining independent
// grids.
type Refiner struct {
	Log *logrus.Logger
}

// New returns a Refiner. log may be nil, in which case logging is discarded.
func New(log *logrus.Logger) *Refiner {
	if log == nil {
		log = logrus.New()
		log.SetOutput(discardWriter{})
	}
	return &Refiner{Log: log}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Refine regenerates the interior of rect on a copy of g, leaving everything
// outside rect untouched. On failure it returns a copy of the original grid
// unchanged alongside a Report explaining why.
func (rf *Refiner) Refine(g *grid.Grid, rect Rect, req Request, seed int64, knobs generate.Knobs, spec reach.PlayerSpec) (*grid.Grid, Report) {
	validator := reach.New(spec)

	origReport := validator.Validate(g, nil, nil)
	if !origReport.Reachable {
		return g.Copy(), Report{
			Success:      false,
			Reasons:      []string{"Original grid is not reachable"},
			Reachability: origReport,
		}
	}

	seamEntry, seamExit := findSeams(g, rect, validator)
	if seamEntry == nil || seamExit == nil {
		return g.Copy(), Report{
			Success:      false,
			SeamEntry:    seamEntry,
			SeamExit:     seamExit,
			Reasons:      []string{"Could not detect seam points on rect boundary"},
			Reachability: origReport,
		}
	}

	innerKnobs := applyDeltas(knobs, req)

	origStartX, origStartY, startOK := g.FindFlag(grid.Start)
	origGoalX, origGoalY, goalOK := g.FindFlag(grid.Goal)
	startInside := startOK && rect.Contains(origStartX, origStartY)
	goalInside := goalOK && rect.Contains(origGoalX, origGoalY)

	for attempt := 0; attempt < MaxInner; attempt++ {
		source := rng.New(seed + int64(attempt))

		innerFhs := generateInnerFootholds(source, innerKnobs, spec, rect, *seamEntry, *seamExit)
		if innerFhs == nil {
			continue
		}

		newGrid := g.Copy()
		clearRect(newGrid, rect)
		paintInnerFootholds(newGrid, innerFhs, rect, spec.Height)

		if startInside {
			fh := innerFhs[0]
			_ = newGrid.Set(fh.X+fh.Width/2, fh.Y, grid.Start)
		}
		if goalInside {
			fh := innerFhs[len(innerFhs)-1]
			_ = newGrid.Set(fh.X+fh.Width/2, fh.Y, grid.Goal)
		}

		if req.AddSecret {
			addSecret(newGrid, innerFhs, rect, source, spec.Height)
		}
		if req.SmoothSilhouette {
			smoothSilhouette(newGrid, rect)
		}

		report := validator.Validate(newGrid, nil, nil)
		if report.Reachable {
			rf.Log.WithFields(logrus.Fields{"attempt": attempt, "inner_footholds": len(innerFhs)}).
				Debug("refine: produced a reachable region")
			return newGrid, Report{
				Success:        true,
				SeamEntry:      seamEntry,
				SeamExit:       seamExit,
				InnerFootholds: len(innerFhs),
				Reachability:   report,
			}
		}
	}

	rf.Log.WithFields(logrus.Fields{"attempts": MaxInner}).Warn("refine: exhausted all attempts")
	return g.Copy(), Report{
		Success:      false,
		SeamEntry:    seamEntry,
		SeamExit:     seamExit,
		Reasons:      []string{"All refinement attempts failed"},
		Reachability: origReport,
	}
}
