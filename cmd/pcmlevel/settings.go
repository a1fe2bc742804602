package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"github.com/cwbudde/algo-leveler/dsp/leveler"
	"github.com/cwbudde/algo-leveler/dsp/window"
	"github.com/cwbudde/algo-leveler/internal/config"
	"github.com/cwbudde/algo-leveler/internal/job"
)

var errUsage = errors.New("usage: pcmlevel [flags] input.wav output.wav")

type settings struct {
	cfg         config.Config
	ops         []config.ChannelOp
	window      window.Type
	analyze     bool
	showVersion bool

	input  string
	output string
}

// obtainSettings loads the config file named by -cfg and overrides it with
// every flag given explicitly.
func obtainSettings(args []string, stderr io.Writer) (*settings, error) {
	fs := flag.NewFlagSet("pcmlevel", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := config.Default()
	filename := fs.String("cfg", config.DefaultPath, "config file")
	channels := fs.String("channels", "", `channel operations, e.g. "0>0:adjust,1>1:copy"`)
	harmonize := fs.Bool("harmonize", false, "blend factors of nearby positive and negative leaders")
	maxFactor := fs.Float64("max-factor", def.MaxFactor, "largest gain applied to any sample")
	workers := fs.Int("workers", def.Workers, "channels processed in parallel")
	analyze := fs.Bool("analyze", false, "print before/after channel statistics")
	win := fs.String("window", def.AnalysisWindow, "analysis window for -analyze: Rectangular, Hann, Hamming, Blackman, Blackman-Harris or Flat-Top")
	logLevel := fs.String("loglevel", def.LogLevel, `log level, e.g. "info" or "info,LVLR=debug"`)
	logFile := fs.String("logfile", "", "rotating log file")
	watch := fs.String("watch", "", "level every WAV file created in this directory")
	out := fs.String("out", "", "output directory for -watch")
	versionFlag := fs.Bool("version", false, "show version")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pcmlevel [flags] input.wav output.wav\n")
		fmt.Fprintf(stderr, "       pcmlevel [flags] -watch DIR -out DIR\n\n")
		fmt.Fprintf(stderr, "Levels the volume of 16-bit PCM WAV files.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *versionFlag {
		fmt.Fprintf(stderr, "pcmlevel %s (%s)\n", version, runtime.Version())
		return &settings{showVersion: true}, nil
	}

	if *filename != config.DefaultPath && !config.Exists(*filename) {
		return nil, fmt.Errorf("config file %s does not exist", *filename)
	}
	cfg, err := config.Load(*filename)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "channels":
			cfg.Channels = *channels
		case "harmonize":
			cfg.Harmonize = *harmonize
		case "max-factor":
			cfg.MaxFactor = *maxFactor
		case "workers":
			cfg.Workers = *workers
		case "loglevel":
			cfg.LogLevel = *logLevel
		case "logfile":
			cfg.LogFile = *logFile
		case "watch":
			cfg.WatchDir = *watch
		case "out":
			cfg.OutDir = *out
		case "window":
			cfg.AnalysisWindow = *win
		}
	})
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg, analyze: *analyze}
	if s.window, err = cfg.Window(); err != nil {
		return nil, err
	}
	if cfg.Channels != "" {
		if s.ops, err = config.ParseChannelOps(cfg.Channels); err != nil {
			return nil, err
		}
	}

	rest := fs.Args()
	switch {
	case cfg.WatchDir != "" && len(rest) != 0:
		return nil, errors.New("-watch takes no input or output file")
	case cfg.WatchDir != "" && s.analyze:
		return nil, errors.New("-analyze cannot be combined with -watch")
	case cfg.WatchDir == "" && len(rest) != 2:
		fs.Usage()
		return nil, errUsage
	case cfg.WatchDir == "":
		s.input, s.output = rest[0], rest[1]
	}
	return s, nil
}

// request builds the job template shared by single file and watch mode.
func (s *settings) request() job.Request {
	return job.Request{
		Ops: s.ops,
		Options: []leveler.Option{
			leveler.WithMaxFactor(s.cfg.MaxFactor),
			leveler.WithHarmonize(s.cfg.Harmonize),
			leveler.WithHarmonizeProximity(s.cfg.HarmonizeProximity),
		},
		Workers:   s.cfg.Workers,
		BlockSize: s.cfg.BlockSize,
		Analyze:   s.analyze,
		Window:    s.window,
	}
}
