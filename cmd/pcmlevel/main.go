// Command pcmlevel levels the volume of 16-bit PCM WAV files.
//
// Usage:
//
//	pcmlevel [flags] input.wav output.wav
//	pcmlevel [flags] -watch DIR -out DIR
//
// Every channel is leveled in place unless -channels routes them.
//
// Examples:
//
//	pcmlevel speech.wav speech-leveled.wav
//	pcmlevel -channels "0>0:adjust,1>1:copy" -max-factor 4 in.wav out.wav
//	pcmlevel -harmonize -analyze in.wav out.wav
//	pcmlevel -watch ~/incoming -out ~/leveled
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-leveler/internal/job"
	"github.com/cwbudde/algo-leveler/internal/logutil"
	"github.com/cwbudde/algo-leveler/measure/report"
)

var version = "0.1.0-dev"

func run(ctx context.Context, s *settings, stdout io.Writer) error {
	backend, err := logutil.NewBackend(s.cfg.LogFile, s.cfg.LogLevel, stdout)
	if err != nil {
		return err
	}
	defer backend.Close()
	log := backend.Logger("MAIN")

	req := s.request()
	req.Log = backend.Logger("JOB")
	req.LevelerLog = backend.Logger("LVLR")

	if s.cfg.WatchDir != "" {
		return job.Watch(ctx, job.WatchConfig{
			Dir:      s.cfg.WatchDir,
			OutDir:   s.cfg.OutDir,
			Settle:   s.cfg.WatchSettle,
			Template: req,
		})
	}

	req.Input, req.Output = s.input, s.output
	req.Terminal = os.Stderr
	res, err := job.Run(ctx, req)
	if err != nil {
		return err
	}

	for _, ch := range res.Channels {
		log.Infof("%s: %d frames, %d+%d groups, %d+%d leaders, factors %.3f..%.3f",
			ch.Op, ch.Summary.Frames, ch.Summary.PositiveGroups, ch.Summary.NegativeGroups,
			ch.Summary.PositiveLeaders, ch.Summary.NegativeLeaders,
			ch.Summary.MinFactor, ch.Summary.MaxFactor)
	}
	if s.analyze {
		return report.Render(stdout, res.Reports)
	}
	return nil
}

func _main() error {
	s, err := obtainSettings(os.Args[1:], os.Stderr)
	if err != nil {
		return err
	}
	if s.showVersion {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	err = run(ctx, s, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	if err := _main(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
