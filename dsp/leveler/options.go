package leveler

import (
	"github.com/cwbudde/algo-leveler/dsp/core"
	"github.com/decred/slog"
)

// Config defines configuration for the leveler.
type Config struct {
	// SampleRate converts peak distances to time. BlockSize is the number
	// of frames between progress updates and cancellation checks.
	core.ProcessorConfig

	// MaxFactor caps the gain of any leader. Must be >= 1.
	MaxFactor float64
	// Harmonize blends the factors of close positive and negative leaders.
	Harmonize bool
	// HarmonizeProximity is the harmonizer reach in seconds.
	HarmonizeProximity float64

	Progress Progress
	Log      slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig:    core.DefaultProcessorConfig(),
		MaxFactor:          DefaultMaxFactor,
		HarmonizeProximity: DefaultHarmonizeProximity,
		Log:                slog.Disabled,
	}
}

// WithSampleRate sets the sample rate used to convert peak distances to time.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets how many frames pass between progress updates and
// cancellation checks.
func WithBlockSize(blockSize int) Option {
	return func(cfg *Config) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithMaxFactor sets the gain cap. Values below 1 are ignored.
func WithMaxFactor(maxFactor float64) Option {
	return func(cfg *Config) {
		if maxFactor >= 1 {
			cfg.MaxFactor = maxFactor
		}
	}
}

// WithHarmonize enables or disables the leader harmonizer.
func WithHarmonize(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Harmonize = enabled
	}
}

// WithHarmonizeProximity sets the harmonizer reach in seconds.
func WithHarmonizeProximity(seconds float64) Option {
	return func(cfg *Config) {
		if seconds >= 0 {
			cfg.HarmonizeProximity = seconds
		}
	}
}

// WithProgress reports both sample passes to p.
func WithProgress(p Progress) Option {
	return func(cfg *Config) {
		if p != nil {
			cfg.Progress = p
		}
	}
}

// WithLogger sets the logger for stage summaries.
func WithLogger(log slog.Logger) Option {
	return func(cfg *Config) {
		if log != nil {
			cfg.Log = log
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
