package leveler

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-leveler/dsp/core"
)

var (
	// ErrInvalidSampleRange reports a sample outside [-32768, 32767].
	ErrInvalidSampleRange = errors.New("sample outside PCM16 range")
	// ErrSourceExhausted reports a source that ended before FrameCount frames.
	ErrSourceExhausted = errors.New("source exhausted before declared frame count")
	// ErrInvalidSampleRate reports a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("sample rate must be > 0")

	// ErrNilSource reports a nil Source.
	ErrNilSource = errors.New("source must not be nil")
	// ErrNilSink reports a nil Sink.
	ErrNilSink = errors.New("sink must not be nil")
)

// readSample reads the frame at pos and validates it.
func readSample(src Source, pos, total int64) (int32, error) {
	v, err := src.ReadNext()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: got %d of %d frames", ErrSourceExhausted, pos, total)
		}
		return 0, fmt.Errorf("read frame %d: %w", pos, err)
	}
	if !core.ValidSample(v) {
		return 0, fmt.Errorf("%w: %d at frame %d", ErrInvalidSampleRange, v, pos)
	}
	return v, nil
}
