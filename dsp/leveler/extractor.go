package leveler

import (
	"math"

	"github.com/cwbudde/algo-leveler/dsp/core"
)

// CanLead reports whether leader dominates candidate. A leader never
// dominates a strictly larger peak. Otherwise the relative peak difference in
// percent must exceed the squared peak distance in percent of one second.
// Both groups must have the same polarity.
func CanLead(leader, candidate Group, sampleRate float64) bool {
	leaderMag := core.AbsSample(leader.PeakValue)
	candidateMag := core.AbsSample(candidate.PeakValue)
	if candidateMag > leaderMag || leaderMag == 0 || sampleRate <= 0 {
		return false
	}

	dist := leader.PeakPos - candidate.PeakPos
	if dist < 0 {
		dist = -dist
	}

	timePct := 100 * float64(dist) / sampleRate
	valuePct := 100 * math.Abs(float64(leader.PeakValue)-float64(candidate.PeakValue)) /
		float64(leaderMag)

	return valuePct-timePct*timePct > 0
}

// ExtractLeaders elects the leaders of one polarity list with a monotonic
// stack: a group dominated by the top is skipped, otherwise it pops every top
// it dominates and is pushed. The result is a position-ordered subset of
// groups; the input is not modified.
func ExtractLeaders(groups []Group, sampleRate float64) []Group {
	leaders := make([]Group, 0, min(len(groups), 64))
	for _, g := range groups {
		if n := len(leaders); n > 0 && CanLead(leaders[n-1], g, sampleRate) {
			continue
		}
		for n := len(leaders); n > 0 && CanLead(g, leaders[n-1], sampleRate); n = len(leaders) {
			leaders = leaders[:n-1]
		}
		leaders = append(leaders, g)
	}
	return leaders
}
