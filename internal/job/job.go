package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/cwbudde/algo-leveler/audio/wavio"
	"github.com/cwbudde/algo-leveler/dsp/buffer"
	"github.com/cwbudde/algo-leveler/dsp/leveler"
	"github.com/cwbudde/algo-leveler/dsp/window"
	"github.com/cwbudde/algo-leveler/internal/config"
	"github.com/cwbudde/algo-leveler/internal/logutil"
	"github.com/cwbudde/algo-leveler/internal/progress"
	"github.com/cwbudde/algo-leveler/measure/report"
	timestats "github.com/cwbudde/algo-leveler/stats/time"
	"github.com/decred/slog"
	"golang.org/x/sync/errgroup"
)

// progressStep is the percent interval of logged progress.
const progressStep = 10

// ErrChannelRange reports an operation reading a channel the input lacks.
var ErrChannelRange = errors.New("input channel out of range")

// Request describes one input file to level.
type Request struct {
	Input  string
	Output string

	// Ops routes input channels; nil adjusts every channel in place.
	Ops []config.ChannelOp
	// Options configure the leveler. The sample rate is taken from the input.
	Options []leveler.Option

	Workers   int
	BlockSize int
	// Analyze measures every channel before and after.
	Analyze bool
	// Window is the analysis window of the Analyze spectra.
	Window window.Type

	// Terminal receives a progress bar when a single channel is adjusted.
	// Otherwise progress is logged.
	Terminal io.Writer
	Log      slog.Logger
	// LevelerLog receives the leveler's own messages; nil uses Log.
	LevelerLog slog.Logger
}

// ChannelResult is the outcome of one channel operation.
type ChannelResult struct {
	Op      config.ChannelOp
	Summary leveler.Summary
}

// Result describes a finished job.
type Result struct {
	Info     wavio.Info
	Channels []ChannelResult
	// Reports is filled when Request.Analyze is set, in Ops order.
	Reports []report.Channel
}

var pool = buffer.NewPool()

// Run levels req.Input into req.Output. The output has one channel per
// distinct output index up to the highest; unmapped channels are silent.
func Run(ctx context.Context, req Request) (Result, error) {
	log := req.Log
	if log == nil {
		log = slog.Disabled
	}
	lvlLog := req.LevelerLog
	if lvlLog == nil {
		lvlLog = log
	}
	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	info, err := wavio.ReadInfo(req.Input)
	if err != nil {
		return Result{}, err
	}

	ops := req.Ops
	if ops == nil {
		ops = config.DefaultChannelOps(info.Channels)
	}
	for _, op := range ops {
		if op.In >= info.Channels {
			return Result{}, fmt.Errorf("%w: %s on %d channel input", ErrChannelRange, op, info.Channels)
		}
	}

	log.Infof("Leveling %s (%s)", req.Input, info)

	res := Result{
		Info:     info,
		Channels: make([]ChannelResult, len(ops)),
	}
	if req.Analyze {
		res.Reports = make([]report.Channel, len(ops))
	}

	outputs := make([]*buffer.Buffer, config.OutputChannels(ops))
	defer func() {
		for _, b := range outputs {
			pool.Put(b)
		}
	}()

	adjusting := 0
	for _, op := range ops {
		if op.Op == config.Adjust {
			adjusting++
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, op := range ops {
		dst := pool.Get(int(info.Frames))
		outputs[op.Out] = dst

		var prog leveler.Progress
		if adjusting == 1 && req.Terminal != nil {
			prog = progress.NewPrinter(req.Terminal, op.String())
		} else {
			prog = progress.NewLogger(log, op.String(), progressStep)
		}

		g.Go(func() error {
			r := runner{
				req:      req,
				info:     info,
				log:      logutil.PrefixLogger(log, op.String()+":"),
				lvlLog:   logutil.PrefixLogger(lvlLog, op.String()+":"),
				progress: prog,
			}

			var before *buffer.Buffer
			if req.Analyze && op.Op == config.Adjust {
				before = pool.Get(int(info.Frames))
				defer pool.Put(before)
			}

			sum, err := r.run(gctx, op, dst, before)
			if err != nil {
				return fmt.Errorf("channel %s: %w", op, err)
			}
			res.Channels[i] = ChannelResult{Op: op, Summary: sum}

			if req.Analyze {
				in := dst.Samples()
				if before != nil {
					in = before.Samples()
				}
				rep, err := report.Compare(op.String(), in, dst.Samples(), float64(info.SampleRate), req.Window, sum)
				if err != nil {
					return fmt.Errorf("channel %s: %w", op, err)
				}
				res.Reports[i] = rep
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	channels := make([][]int32, len(outputs))
	for i, b := range outputs {
		if b == nil {
			channels[i] = make([]int32, info.Frames)
			continue
		}
		channels[i] = b.Samples()
	}

	if err := wavio.WriteFile(req.Output, info.SampleRate, channels, req.BlockSize); err != nil {
		return Result{}, err
	}
	log.Infof("Wrote %s", req.Output)

	return res, nil
}

type runner struct {
	req      Request
	info     wavio.Info
	log      slog.Logger
	lvlLog   slog.Logger
	progress leveler.Progress
}

func (r runner) open(channel int) (*wavio.ChannelReader, error) {
	return wavio.OpenChannel(r.req.Input, channel, r.req.BlockSize)
}

// run executes op into dst. When before is non-nil it receives the input
// samples as the analysis pass reads them.
func (r runner) run(ctx context.Context, op config.ChannelOp, dst, before *buffer.Buffer) (leveler.Summary, error) {
	reader, err := r.open(op.In)
	if err != nil {
		return leveler.Summary{}, err
	}
	defer reader.Close()

	if op.Op == config.Copy {
		if err := copyChannel(ctx, reader, dst); err != nil {
			return leveler.Summary{}, err
		}
		r.log.Debugf("Copied %d frames", dst.Len())
		return leveler.Summary{Frames: int64(dst.Len()), MinFactor: 1, MaxFactor: 1}, nil
	}

	opts := append(r.req.Options[:len(r.req.Options):len(r.req.Options)],
		leveler.WithSampleRate(float64(r.info.SampleRate)),
		leveler.WithBlockSize(r.req.BlockSize),
		leveler.WithProgress(r.progress),
		leveler.WithLogger(r.lvlLog),
	)

	var src leveler.Source = reader
	if before != nil {
		src = &tapSource{Source: reader, tap: before}
	}
	out := timestats.NewStreamingStats()

	sum, err := leveler.New(opts...).Process(ctx, src, teeSink{dst, out})
	if err != nil {
		return leveler.Summary{}, err
	}

	st := out.Result()
	r.log.Infof("%d/%d leaders, factors %.3f..%.3f, output peak %.2f dBFS, RMS %.2f dBFS",
		sum.PositiveLeaders, sum.NegativeLeaders, sum.MinFactor, sum.MaxFactor,
		st.PeakDBFS, st.RMSDBFS)
	return sum, nil
}

// tapSource copies every sample of the first pass into tap.
type tapSource struct {
	leveler.Source
	tap     leveler.Sink
	rewound bool
}

func (s *tapSource) ReadNext() (int32, error) {
	v, err := s.Source.ReadNext()
	if err != nil || s.rewound {
		return v, err
	}
	return v, s.tap.Write(v)
}

func (s *tapSource) Rewind() error {
	s.rewound = true
	return s.Source.Rewind()
}

// teeSink writes every sample to each of its sinks.
type teeSink []leveler.Sink

func (t teeSink) Write(v int32) error {
	for _, s := range t {
		if err := s.Write(v); err != nil {
			return err
		}
	}
	return nil
}

// copyChannel drains src into dst.
func copyChannel(ctx context.Context, src leveler.Source, dst leveler.Sink) error {
	for i := int64(0); ; i++ {
		if i&0xFFF == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		v, err := src.ReadNext()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read frame %d: %w", i, err)
		}
		if err := dst.Write(v); err != nil {
			return fmt.Errorf("write frame %d: %w", i, err)
		}
	}
}
