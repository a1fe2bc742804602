package leveler

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-leveler/dsp/core"
)

// leaderCursor walks a position-ordered leader list alongside the samples.
type leaderCursor struct {
	leaders []Group
	idx     int
}

// factorAt returns the factor of the leader covering pos. Positions must be
// queried in increasing order.
func (c *leaderCursor) factorAt(pos int64) (float64, bool) {
	for c.idx < len(c.leaders) && c.leaders[c.idx].End < pos {
		c.idx++
	}
	if c.idx == len(c.leaders) || c.leaders[c.idx].Start > pos {
		return 1, false
	}
	return c.leaders[c.idx].Factor, true
}

// AdjustVolume is the second pass. It reads src from its current position,
// scales each non-zero sample by the factor of the covering leader of its
// polarity and writes the result to dst. Samples outside every leader pass
// unscaled. progress may be nil.
func AdjustVolume(ctx context.Context, src Source, dst Sink, positive, negative []Group, progress Progress) error {
	return adjustVolume(ctx, src, dst, positive, negative, progress, progressStride)
}

func adjustVolume(ctx context.Context, src Source, dst Sink, positive, negative []Group, progress Progress, stride int) error {
	if src == nil {
		return ErrNilSource
	}
	if dst == nil {
		return ErrNilSink
	}

	total := src.FrameCount()
	meter := newPassMeter(ctx, progress, total, stride)

	pos := leaderCursor{leaders: positive}
	neg := leaderCursor{leaders: negative}

	for i := int64(0); i < total; i++ {
		v, err := readSample(src, i, total)
		if err != nil {
			return err
		}

		out := v
		switch {
		case v > 0:
			if f, ok := pos.factorAt(i); ok {
				out = core.ScaleSample(v, f)
			}
		case v < 0:
			if f, ok := neg.factorAt(i); ok {
				out = core.ScaleSample(v, f)
			}
		}

		if err := dst.Write(out); err != nil {
			return fmt.Errorf("write frame %d: %w", i, err)
		}
		if err := meter.step(); err != nil {
			return fmt.Errorf("adjust volume: %w", err)
		}
	}
	meter.finish()

	return nil
}
