package leveler

import "fmt"

// Group is an excursion group: a maximal run of same-sign, non-zero samples.
// End is inclusive. After assignment a leader Group spans every group it
// absorbed. Factor is 1 until ApplyFactors sets it.
type Group struct {
	Start     int64
	End       int64
	PeakPos   int64
	PeakValue int32
	Factor    float64
}

// Groups holds the two polarity lists produced by FindGroups, each ordered
// by position.
type Groups struct {
	Positive []Group
	Negative []Group
}

func newGroup(pos int64, v int32) Group {
	return Group{Start: pos, End: pos, PeakPos: pos, PeakValue: v, Factor: 1}
}

// Polarity returns the polarity of the group's peak.
func (g Group) Polarity() Polarity {
	if g.PeakValue < 0 {
		return Negative
	}
	return Positive
}

// Covers reports whether pos lies within [Start, End].
func (g Group) Covers(pos int64) bool {
	return g.Start <= pos && pos <= g.End
}

// Len returns the number of frames spanned.
func (g Group) Len() int64 {
	return g.End - g.Start + 1
}

func (g Group) String() string {
	return fmt.Sprintf("Group[start=%d, end=%d, peak=%d@%d, factor=%.4f]",
		g.Start, g.End, g.PeakValue, g.PeakPos, g.Factor)
}

// extend appends the sample at pos, which must directly follow End.
func (g *Group) extend(pos int64, v int32) {
	g.End = pos
	if g.Polarity().MoreExtreme(v, g.PeakValue) {
		g.PeakValue = v
		g.PeakPos = pos
	}
}

// absorb widens g to cover other and adopts other's peak when it is strictly
// more extreme in g's polarity.
func (g *Group) absorb(other Group) {
	g.Start = min(g.Start, other.Start)
	g.End = max(g.End, other.End)
	if g.Polarity().MoreExtreme(other.PeakValue, g.PeakValue) {
		g.PeakValue = other.PeakValue
		g.PeakPos = other.PeakPos
	}
}
