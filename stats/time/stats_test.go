package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-leveler/internal/testutil"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	return math.Abs(a-b) <= tol
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Frames != 0 || s.Peak != 0 || s.RMS != 0 {
		t.Fatalf("Calculate(nil) = %+v", s)
	}
	if !math.IsInf(s.PeakDBFS, -1) || !math.IsInf(s.RMSDBFS, -1) {
		t.Fatalf("dB fields = %v, %v, want -Inf", s.PeakDBFS, s.RMSDBFS)
	}
}

func TestCalculateSquare(t *testing.T) {
	samples := []int32{16384, -16384, 16384, -16384}
	s := Calculate(samples)

	if s.Frames != 4 {
		t.Errorf("Frames: got %d, want 4", s.Frames)
	}
	if s.Max != 16384 || s.MaxPos != 0 || s.Min != -16384 || s.MinPos != 1 {
		t.Errorf("extremes: got %d@%d %d@%d", s.Max, s.MaxPos, s.Min, s.MinPos)
	}
	if s.Peak != 16384 {
		t.Errorf("Peak: got %d, want 16384", s.Peak)
	}
	if !almostEqual(s.PeakDBFS, 20*math.Log10(0.5), tolerance) {
		t.Errorf("PeakDBFS: got %g, want %g", s.PeakDBFS, 20*math.Log10(0.5))
	}
	if !almostEqual(s.RMS, 16384, tolerance) {
		t.Errorf("RMS: got %g, want 16384", s.RMS)
	}
	if !almostEqual(s.DC, 0, tolerance) {
		t.Errorf("DC: got %g, want 0", s.DC)
	}
	if !almostEqual(s.CrestFactor, 1, tolerance) || !almostEqual(s.CrestFactorDB, 0, tolerance) {
		t.Errorf("crest: got %g / %g dB, want 1 / 0 dB", s.CrestFactor, s.CrestFactorDB)
	}
	if s.ZeroCrossings != 3 {
		t.Errorf("ZeroCrossings: got %d, want 3", s.ZeroCrossings)
	}
	if !almostEqual(s.Variance, 16384*16384, 1e-3) {
		t.Errorf("Variance: got %g, want %d", s.Variance, 16384*16384)
	}
}

func TestCalculateSine(t *testing.T) {
	// 100 Hz at 8 kHz: exactly 80 samples per cycle.
	samples := testutil.SinePCM(100, 8000, 10000, 8000)
	s := Calculate(samples)

	if s.Peak != 10000 {
		t.Errorf("Peak: got %d, want 10000", s.Peak)
	}
	if !almostEqual(s.RMS, 10000/math.Sqrt2, 1) {
		t.Errorf("RMS: got %g, want %g", s.RMS, 10000/math.Sqrt2)
	}
	if !almostEqual(s.CrestFactor, math.Sqrt2, 1e-3) {
		t.Errorf("CrestFactor: got %g, want sqrt(2)", s.CrestFactor)
	}
	if !almostEqual(s.DC, 0, 0.01) {
		t.Errorf("DC: got %g, want 0", s.DC)
	}
}

func TestCalculateClipped(t *testing.T) {
	s := Calculate([]int32{32767, 0, -32768, 100, 32767})
	if s.Clipped != 3 {
		t.Fatalf("Clipped: got %d, want 3", s.Clipped)
	}
	if s.Peak != 32768 {
		t.Fatalf("Peak: got %d, want 32768", s.Peak)
	}
	if !almostEqual(s.PeakDBFS, 0, tolerance) {
		t.Fatalf("PeakDBFS: got %g, want 0", s.PeakDBFS)
	}
}

func TestCalculateSilence(t *testing.T) {
	s := Calculate(make([]int32, 16))
	if s.CrestFactor != 0 || !math.IsInf(s.CrestFactorDB, -1) {
		t.Fatalf("crest = %g / %g, want 0 / -Inf", s.CrestFactor, s.CrestFactorDB)
	}
	if !math.IsInf(s.PeakDBFS, -1) {
		t.Fatalf("PeakDBFS = %g, want -Inf", s.PeakDBFS)
	}
}

func TestZeroCrossingsSkipZeros(t *testing.T) {
	tests := []struct {
		in   []int32
		want int64
	}{
		{nil, 0},
		{[]int32{1}, 0},
		{[]int32{1, -1}, 1},
		{[]int32{1, 0, -1}, 0},
		{[]int32{-32768, 32767, -1}, 2},
	}

	for _, tt := range tests {
		if got := ZeroCrossings(tt.in); got != tt.want {
			t.Fatalf("ZeroCrossings(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHelpersMatchCalculate(t *testing.T) {
	samples := testutil.NoisePCM(9, 20000, 4096)
	s := Calculate(samples)

	if got := RMS(samples); !almostEqual(got, s.RMS, 1e-6) {
		t.Fatalf("RMS() = %g, Calculate().RMS = %g", got, s.RMS)
	}
	if got := Peak(samples); got != s.Peak {
		t.Fatalf("Peak() = %d, Calculate().Peak = %d", got, s.Peak)
	}
	if got := ZeroCrossings(samples); got != s.ZeroCrossings {
		t.Fatalf("ZeroCrossings() = %d, Calculate().ZeroCrossings = %d", got, s.ZeroCrossings)
	}
	if RMS(nil) != 0 || Peak(nil) != 0 {
		t.Fatal("helpers on empty input not zero")
	}
}

func TestStreamingMatchesCalculate(t *testing.T) {
	samples := testutil.NoisePCM(1, 30000, 10000)
	want := Calculate(samples)

	s := NewStreamingStats()
	s.Update(samples[:3333])
	for _, v := range samples[3333:5000] {
		if err := s.Write(v); err != nil {
			t.Fatal(err)
		}
	}
	s.Update(samples[5000:])

	if got := s.Result(); got != want {
		t.Fatalf("streaming = %+v\nwant %+v", got, want)
	}

	s.Reset()
	if got := s.Result(); got.Frames != 0 {
		t.Fatalf("after Reset Frames = %d, want 0", got.Frames)
	}
}

func TestChunkStats(t *testing.T) {
	samples := []int32{10, -10, 10, -10, 0, 4, 8}
	chunks := ChunkStats(samples, 4)

	if len(chunks) != 2 {
		t.Fatalf("len = %d, want 2", len(chunks))
	}

	c := chunks[0]
	if c.Start != 0 || c.Len != 4 || c.Mean != 10 || c.AvgDelta != 20 {
		t.Fatalf("chunk 0 = %+v", c)
	}
	c = chunks[1]
	if c.Start != 4 || c.Len != 3 || c.Mean != 4 || c.AvgDelta != 4 {
		t.Fatalf("chunk 1 = %+v", c)
	}

	if ChunkStats(samples, 0) != nil || ChunkStats(nil, 4) != nil {
		t.Fatal("ChunkStats with no chunks returned data")
	}
	if got := ChunkStats([]int32{-5}, 4); got[0].Mean != 5 || got[0].AvgDelta != 0 {
		t.Fatalf("single-sample chunk = %+v", got[0])
	}
}
