package leveler

import "math"

// DefaultHarmonizeProximity is the default harmonizer reach in seconds.
const DefaultHarmonizeProximity = 1.0

// harmonizeWeight is the weight of the smaller factor in a blend.
const harmonizeWeight = 10

// ProximityFrames converts a proximity in seconds to frames.
func ProximityFrames(seconds, sampleRate float64) int64 {
	return int64(math.Round(seconds * sampleRate))
}

// HasEnoughProximity reports whether the spans of a and b overlap once each
// is widened by proximity frames.
func HasEnoughProximity(a, b Group, proximity int64) bool {
	return a.End >= b.Start-proximity && b.End >= a.Start-proximity
}

// Harmonize walks the positive and negative leader lists by End and blends
// the factors of every close pair: the bigger factor moves to
// (bigger + 10*smaller) / 11. Factors are changed in place. It returns the
// number of blended pairs.
func Harmonize(positive, negative []Group, proximity int64) int {
	if len(positive) == 0 || len(negative) == 0 {
		return 0
	}

	blended := 0
	i, j := 0, 0
	for {
		p, n := &positive[i], &negative[j]
		if HasEnoughProximity(*p, *n, proximity) {
			blend(p, n)
			blended++
		}

		switch {
		case p.End < n.End:
			if i+1 == len(positive) {
				return blended
			}
			i++
		case p.End > n.End:
			if j+1 == len(negative) {
				return blended
			}
			j++
		default:
			if i+1 == len(positive) || j+1 == len(negative) {
				return blended
			}
			i++
			j++
		}
	}
}

func blend(a, b *Group) {
	const div = harmonizeWeight + 1
	if a.Factor > b.Factor {
		a.Factor = (a.Factor + harmonizeWeight*b.Factor) / div
		return
	}
	b.Factor = (harmonizeWeight*a.Factor + b.Factor) / div
}
