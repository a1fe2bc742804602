// Package leveler implements an offline, two-pass adaptive peak leveler for a
// single channel of PCM16 audio.
//
// The first pass scans the channel into excursion groups (maximal runs of
// same-sign, non-zero samples). For each polarity a monotonic stack elects
// leader groups: a leader keeps authority over a smaller neighbour only while
// the percentage difference of their peaks outweighs the square of their
// distance in percent of a second. Every group is then assigned to the
// nearest leader, whose interval grows to cover it, and each leader gets the
// gain that brings its peak to full scale, capped at MaxFactor.
//
// The second pass rewinds the source and rewrites every sample scaled by the
// factor of the leader that controls its position, rounding and clamping to
// the PCM16 range. Zero samples pass through unchanged.
//
// Stages:
//   - FindGroups: scanning state machine over the source.
//   - ExtractLeaders / CanLead: dominance election.
//   - AssignGroups: interval merge of groups into leaders.
//   - ApplyFactors / GainFactor: per-leader gain.
//   - Harmonize: optional blending of close positive/negative factors.
//   - AdjustVolume: the apply pass.
//
// Leveler ties the stages together; NormalizeChannel is the one-shot entry
// point.
package leveler
