package leveler

import "context"

// Source is a sequential single-channel sample reader of known length.
// ReadNext returns io.EOF once exhausted. Rewind restarts at frame 0 and is
// used before the second pass.
type Source interface {
	FrameCount() int64
	ReadNext() (int32, error)
	Rewind() error
}

// Sink receives processed samples in order. The caller flushes or closes it.
type Sink interface {
	Write(v int32) error
}

// Progress observes the two sample passes. It has no effect on the result.
type Progress interface {
	Reset(total int64)
	Advance(n int64)
	Finish()
}

// progressStride is the default number of frames between Advance calls and
// cancellation checks. A Leveler uses its BlockSize instead.
const progressStride = 1 << 12

type nopProgress struct{}

func (nopProgress) Reset(int64)   {}
func (nopProgress) Advance(int64) {}
func (nopProgress) Finish()       {}

// passMeter batches progress updates and context checks for one sample pass.
type passMeter struct {
	ctx      context.Context
	progress Progress
	stride   int64
	pending  int64
}

func newPassMeter(ctx context.Context, progress Progress, total int64, stride int) *passMeter {
	if ctx == nil {
		ctx = context.Background()
	}
	if progress == nil {
		progress = nopProgress{}
	}
	if stride <= 0 {
		stride = progressStride
	}
	progress.Reset(total)
	return &passMeter{ctx: ctx, progress: progress, stride: int64(stride)}
}

func (m *passMeter) step() error {
	m.pending++
	if m.pending < m.stride {
		return nil
	}
	m.progress.Advance(m.pending)
	m.pending = 0
	return m.ctx.Err()
}

func (m *passMeter) finish() {
	if m.pending > 0 {
		m.progress.Advance(m.pending)
		m.pending = 0
	}
	m.progress.Finish()
}
