package testutil

import (
	"sync"
	"testing"

	"github.com/decred/slog"
)

// logBackend forwards slog lines to t.Log until the test ends.
type logBackend struct {
	mtx  sync.Mutex
	tb   testing.TB
	done bool
}

func (b *logBackend) Write(p []byte) (int, error) {
	b.mtx.Lock()
	if !b.done && len(p) > 0 {
		b.tb.Log(string(p[:len(p)-1]))
	}
	b.mtx.Unlock()
	return len(p), nil
}

// TestLogger returns an slog.Logger for subsystem sys that logs by issuing
// t.Log calls.
func TestLogger(t testing.TB, sys string) slog.Logger {
	tlb := &logBackend{tb: t}
	t.Cleanup(func() {
		tlb.mtx.Lock()
		tlb.done = true
		tlb.mtx.Unlock()
	})

	logg := slog.NewBackend(tlb).Logger(sys)
	logg.SetLevel(slog.LevelTrace)
	return logg
}
