package leveler

// DefaultMaxFactor caps the gain applied to quiet passages.
const DefaultMaxFactor = 10.0

// GainFactor returns the factor that scales peak to the full-scale target of
// polarity, capped at maxFactor. A zero peak yields 1.
func GainFactor(peak int32, polarity Polarity, maxFactor float64) float64 {
	if peak == 0 || !polarity.Contains(peak) {
		return 1
	}
	return min(maxFactor, float64(polarity.TargetExtreme())/float64(peak))
}

// ApplyFactors sets Factor on every leader in place.
func ApplyFactors(leaders []Group, maxFactor float64) {
	for i := range leaders {
		leaders[i].Factor = GainFactor(leaders[i].PeakValue, leaders[i].Polarity(), maxFactor)
	}
}

// factorRange returns the smallest and largest Factor across the lists.
// ok is false when all lists are empty.
func factorRange(lists ...[]Group) (lo, hi float64, ok bool) {
	for _, list := range lists {
		for _, g := range list {
			if !ok {
				lo, hi, ok = g.Factor, g.Factor, true
				continue
			}
			lo = min(lo, g.Factor)
			hi = max(hi, g.Factor)
		}
	}
	return lo, hi, ok
}
