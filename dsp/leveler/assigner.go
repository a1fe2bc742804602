package leveler

// AssignGroups merges every group of one polarity into exactly one leader.
// Groups ending before the first leader's end go to the first leader; groups
// between two consecutive leaders go to the one whose peak is closer (ties
// go left); groups after the last leader go to it. Each leader widens to
// cover its groups and adopts a strictly more extreme peak.
//
// A single leader spans from the first group's start to the last group's
// end. Without groups or leaders the result is nil. The input slices are
// not modified.
func AssignGroups(groups, leaders []Group) []Group {
	if len(groups) == 0 || len(leaders) == 0 {
		return nil
	}

	if len(leaders) == 1 {
		l := leaders[0]
		l.Start = min(l.Start, groups[0].Start)
		l.End = max(l.End, groups[len(groups)-1].End)
		return []Group{l}
	}

	result := make([]Group, 0, len(leaders))
	result = append(result, leaders[0])
	left := 0

	gi := 0
	for ; gi < len(groups) && groups[gi].End <= result[left].End; gi++ {
		result[left].absorb(groups[gi])
	}

	result = append(result, leaders[1])
	right := 1
	next := 2

	for gi < len(groups) {
		g := groups[gi]
		if g.End <= result[right].End {
			if closerToLeft(g, result[left], result[right]) {
				result[left].absorb(g)
			} else {
				result[right].absorb(g)
			}
			gi++
			continue
		}

		left = right
		if next < len(leaders) {
			result = append(result, leaders[next])
			right = len(result) - 1
			next++
			continue
		}

		for ; gi < len(groups); gi++ {
			result[left].absorb(groups[gi])
		}
	}

	// Leaders that no group reached still control their own span.
	result = append(result, leaders[next:]...)

	return result
}

func closerToLeft(g, left, right Group) bool {
	return absDiff(g.PeakPos, left.PeakPos) <= absDiff(right.PeakPos, g.PeakPos)
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
