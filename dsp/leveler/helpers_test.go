package leveler

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-leveler/dsp/buffer"
)

func grp(start, end, peakPos int64, peak int32) Group {
	return Group{Start: start, End: end, PeakPos: peakPos, PeakValue: peak, Factor: 1}
}

func withFactor(g Group, f float64) Group {
	g.Factor = f
	return g
}

func requireGroups(t *testing.T, name string, got, want []Group) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d (got %v)", name, len(got), len(want), got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

// shortSource declares more frames than it holds.
type shortSource struct {
	*buffer.Buffer
	declared int64
}

func (s shortSource) FrameCount() int64 { return s.declared }

var errBroken = errors.New("broken")

// failingSink rejects writes after limit samples.
type failingSink struct {
	limit   int
	written int
}

func (s *failingSink) Write(int32) error {
	if s.written >= s.limit {
		return errBroken
	}
	s.written++
	return nil
}

// noRewind is a source whose Rewind fails.
type noRewind struct {
	*buffer.Buffer
}

func (noRewind) Rewind() error { return errBroken }

type progressRecorder struct {
	resets   []int64
	advanced int64
	calls    int
	finished int
}

func (p *progressRecorder) Reset(total int64) { p.resets = append(p.resets, total) }
func (p *progressRecorder) Advance(n int64)   { p.advanced += n; p.calls++ }
func (p *progressRecorder) Finish()           { p.finished++ }
