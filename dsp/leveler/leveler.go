package leveler

import (
	"context"
	"fmt"

	"github.com/decred/slog"
)

// Summary describes one leveled channel.
type Summary struct {
	Frames          int64
	PositiveGroups  int
	NegativeGroups  int
	PositiveLeaders int
	NegativeLeaders int
	// HarmonizedPairs counts blended leader pairs; zero unless Harmonize is set.
	HarmonizedPairs int
	// MinFactor and MaxFactor span every final leader factor. Both are 1
	// when there are no leaders.
	MinFactor float64
	MaxFactor float64
	// Empty is set for a zero-frame channel, which is passed through.
	Empty bool
}

// Plan is the outcome of the analysis pass: the final leaders of each
// polarity with their factors, ready for AdjustVolume.
type Plan struct {
	Positive []Group
	Negative []Group
	Summary  Summary
}

// Leveler runs the two-pass leveling pipeline on single channels.
// A Leveler holds only configuration and may be shared between goroutines
// as long as the configured Progress is.
type Leveler struct {
	cfg Config
	log slog.Logger
}

// New creates a leveler with the given options.
func New(opts ...Option) *Leveler {
	cfg := ApplyOptions(opts...)
	return &Leveler{cfg: cfg, log: cfg.Log}
}

// Config returns the effective configuration.
func (l *Leveler) Config() Config {
	return l.cfg
}

// Analyze runs the first pass over src and computes the leaders of both
// polarities. src is left at its end.
func (l *Leveler) Analyze(ctx context.Context, src Source) (Plan, error) {
	if src == nil {
		return Plan{}, ErrNilSource
	}

	frames := src.FrameCount()
	if frames == 0 {
		return Plan{Summary: Summary{Empty: true, MinFactor: 1, MaxFactor: 1}}, nil
	}

	groups, err := findGroups(ctx, src, l.cfg.Progress, l.cfg.BlockSize)
	if err != nil {
		return Plan{}, err
	}

	sr := l.cfg.SampleRate
	posLeaders := ExtractLeaders(groups.Positive, sr)
	negLeaders := ExtractLeaders(groups.Negative, sr)

	plan := Plan{
		Positive: AssignGroups(groups.Positive, posLeaders),
		Negative: AssignGroups(groups.Negative, negLeaders),
	}
	ApplyFactors(plan.Positive, l.cfg.MaxFactor)
	ApplyFactors(plan.Negative, l.cfg.MaxFactor)

	s := Summary{
		Frames:          frames,
		PositiveGroups:  len(groups.Positive),
		NegativeGroups:  len(groups.Negative),
		PositiveLeaders: len(plan.Positive),
		NegativeLeaders: len(plan.Negative),
	}

	if l.cfg.Harmonize {
		proximity := ProximityFrames(l.cfg.HarmonizeProximity, sr)
		s.HarmonizedPairs = Harmonize(plan.Positive, plan.Negative, proximity)
		l.log.Debugf("Harmonized %d leader pairs within %d frames",
			s.HarmonizedPairs, proximity)
	}

	s.MinFactor, s.MaxFactor = 1, 1
	if lo, hi, ok := factorRange(plan.Positive, plan.Negative); ok {
		s.MinFactor, s.MaxFactor = lo, hi
	}
	plan.Summary = s

	l.log.Debugf("Found %d positive and %d negative groups in %d frames",
		s.PositiveGroups, s.NegativeGroups, frames)
	l.log.Debugf("Elected %d positive and %d negative leaders, factors %.3f..%.3f",
		s.PositiveLeaders, s.NegativeLeaders, s.MinFactor, s.MaxFactor)

	return plan, nil
}

// Process levels one channel: it analyzes src, rewinds it and writes the
// adjusted samples to dst. A zero-frame source writes nothing and reports
// Summary.Empty.
func (l *Leveler) Process(ctx context.Context, src Source, dst Sink) (Summary, error) {
	if src == nil {
		return Summary{}, ErrNilSource
	}
	if dst == nil {
		return Summary{}, ErrNilSink
	}

	plan, err := l.Analyze(ctx, src)
	if err != nil {
		return Summary{}, fmt.Errorf("analyze: %w", err)
	}
	if plan.Summary.Empty {
		l.log.Debugf("Empty channel, nothing to level")
		return plan.Summary, nil
	}

	if err := src.Rewind(); err != nil {
		return Summary{}, fmt.Errorf("rewind source: %w", err)
	}

	if err := adjustVolume(ctx, src, dst, plan.Positive, plan.Negative, l.cfg.Progress, l.cfg.BlockSize); err != nil {
		return Summary{}, fmt.Errorf("adjust: %w", err)
	}

	return plan.Summary, nil
}

// NormalizeChannel levels one channel of sampleRate frames per second from
// src into dst.
func NormalizeChannel(src Source, dst Sink, sampleRate int, opts ...Option) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	opts = append(opts[:len(opts):len(opts)], WithSampleRate(float64(sampleRate)))
	_, err := New(opts...).Process(context.Background(), src, dst)
	return err
}
