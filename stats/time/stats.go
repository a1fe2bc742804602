// Package time computes time-domain statistics of PCM16 channels.
package time

import (
	"math"

	"github.com/cwbudde/algo-leveler/dsp/core"
)

// Stats holds time-domain statistics of one channel.
type Stats struct {
	Frames   int64
	Max      int32
	MaxPos   int64
	Min      int32
	MinPos   int64
	Peak     int64   // max(|Max|, |Min|)
	PeakDBFS float64 // -Inf for silence
	DC       float64 // mean
	RMS      float64
	RMSDBFS  float64
	Variance float64
	// CrestFactor is peak / RMS, 0 for silence.
	CrestFactor   float64
	CrestFactorDB float64
	ZeroCrossings int64
	// Clipped counts samples sitting at either full-scale extreme.
	Clipped int64
}

func emptyStats() Stats {
	return Stats{
		PeakDBFS:      math.Inf(-1),
		RMSDBFS:       math.Inf(-1),
		CrestFactorDB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass.
func Calculate(samples []int32) Stats {
	var s StreamingStats
	s.Update(samples)
	return s.Result()
}

// RMS returns the root-mean-square of samples.
func RMS(samples []int32) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sumSq float64
	for _, v := range samples {
		x := float64(v)
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(samples)))
}

// Peak returns the largest sample magnitude.
func Peak(samples []int32) int64 {
	var peak int64
	for _, v := range samples {
		peak = max(peak, core.AbsSample(v))
	}
	return peak
}

// ZeroCrossings counts sign changes between consecutive samples. Zero
// samples neither start nor end a crossing.
func ZeroCrossings(samples []int32) int64 {
	var count int64
	for i := 1; i < len(samples); i++ {
		if int64(samples[i-1])*int64(samples[i]) < 0 {
			count++
		}
	}
	return count
}

// StreamingStats accumulates statistics sample by sample. It implements the
// leveler's Sink, so it can tap a channel while it is written.
type StreamingStats struct {
	n             int64
	mean          float64
	m2            float64
	sumSq         float64
	maxVal        int32
	maxPos        int64
	minVal        int32
	minPos        int64
	zeroCrossings int64
	clipped       int64
	last          int32
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples.
func (s *StreamingStats) Update(samples []int32) {
	for _, v := range samples {
		s.add(v)
	}
}

// Write adds one sample. It never fails.
func (s *StreamingStats) Write(v int32) error {
	s.add(v)
	return nil
}

func (s *StreamingStats) add(v int32) {
	pos := s.n
	s.n++

	// Welford update.
	x := float64(v)
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)

	s.sumSq += x * x

	if pos == 0 || v > s.maxVal {
		s.maxVal, s.maxPos = v, pos
	}
	if pos == 0 || v < s.minVal {
		s.minVal, s.minPos = v, pos
	}

	if pos > 0 && int64(s.last)*int64(v) < 0 {
		s.zeroCrossings++
	}
	if v >= core.MaxSample || v <= core.MinSample {
		s.clipped++
	}

	s.last = v
}

// Result computes the statistics of everything added so far.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return emptyStats()
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)
	peak := max(core.AbsSample(s.maxVal), core.AbsSample(s.minVal))

	var crest float64
	crestDB := math.Inf(-1)
	if rms > 0 {
		crest = float64(peak) / rms
		crestDB = core.LinearToDB(crest)
	}

	return Stats{
		Frames:        s.n,
		Max:           s.maxVal,
		MaxPos:        s.maxPos,
		Min:           s.minVal,
		MinPos:        s.minPos,
		Peak:          peak,
		PeakDBFS:      core.SampleToDBFS(float64(peak)),
		DC:            s.mean,
		RMS:           rms,
		RMSDBFS:       core.SampleToDBFS(rms),
		Variance:      s.m2 / nf,
		CrestFactor:   crest,
		CrestFactorDB: crestDB,
		ZeroCrossings: s.zeroCrossings,
		Clipped:       s.clipped,
	}
}

// Reset clears all accumulated data.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
