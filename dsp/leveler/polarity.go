package leveler

import "github.com/cwbudde/algo-leveler/dsp/core"

// Polarity selects the positive or the negative half of the waveform.
// Both pipelines share the same code; Polarity supplies the comparisons.
type Polarity int

const (
	// Positive covers samples > 0.
	Positive Polarity = iota
	// Negative covers samples < 0.
	Negative
)

// PolarityOf returns the polarity of v. ok is false for zero.
func PolarityOf(v int32) (p Polarity, ok bool) {
	switch {
	case v > 0:
		return Positive, true
	case v < 0:
		return Negative, true
	default:
		return Positive, false
	}
}

// Contains reports whether v belongs to this polarity.
func (p Polarity) Contains(v int32) bool {
	if p == Negative {
		return v < 0
	}
	return v > 0
}

// MoreExtreme reports whether a lies strictly further from zero than b in
// this polarity's direction.
func (p Polarity) MoreExtreme(a, b int32) bool {
	if p == Negative {
		return a < b
	}
	return a > b
}

// TargetExtreme is the full-scale value a leader peak is scaled toward.
func (p Polarity) TargetExtreme() int32 {
	if p == Negative {
		return core.MinSample
	}
	return core.MaxSample
}

func (p Polarity) String() string {
	if p == Negative {
		return "negative"
	}
	return "positive"
}
