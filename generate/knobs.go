package generate

// Knobs tunes the shape of a generated level.
type Knobs struct {
	// TargetFootholdCount is the number of footholds placed, first to last.
	TargetFootholdCount int
	// MinFootholdWidth is the narrowest a sampled foothold may be.
	MinFootholdWidth int
	// MaxFootholdWidth is the widest a sampled foothold may be.
	MaxFootholdWidth int
	// Verticality in [0,1] scales the permitted vertical delta per hop; 0 is
	// flat, 1 allows the full movement envelope.
	Verticality float64
	// Difficulty in [0,1] tightens the minimum horizontal gap and narrows
	// the maximum foothold width.
	Difficulty float64
}

// DefaultKnobs returns the conventional default generator tuning.
func DefaultKnobs() Knobs {
	return Knobs{
		TargetFootholdCount: 8,
		MinFootholdWidth:    3,
		MaxFootholdWidth:    6,
		Verticality:         0.5,
		Difficulty:          0.3,
	}
}
