// Package config loads pcmlevel settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	"github.com/cwbudde/algo-leveler/dsp/window"
)

// DefaultPath is the config file read when -cfg is not given.
const DefaultPath = "~/.pcmlevel/pcmlevel.conf"

// Config holds every setting that can come from the config file. Command
// line flags override it.
type Config struct {
	MaxFactor          float64 `toml:"max_factor"`
	Harmonize          bool    `toml:"harmonize"`
	HarmonizeProximity float64 `toml:"harmonize_proximity"`

	Workers   int    `toml:"workers"`
	BlockSize int    `toml:"block_size"`
	Channels  string `toml:"channels"`

	// AnalysisWindow names the window used for -analyze spectra.
	AnalysisWindow string `toml:"analysis_window"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	WatchDir    string        `toml:"watch_dir"`
	OutDir      string        `toml:"out_dir"`
	WatchSettle time.Duration `toml:"watch_settle"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxFactor:          10,
		HarmonizeProximity: 1,
		Workers:            runtime.NumCPU(),
		BlockSize:          4096,
		AnalysisWindow:     "Hann",
		LogLevel:           "info",
		WatchSettle:        2 * time.Second,
	}
}

// Load reads path over the defaults. A missing file at DefaultPath is not
// an error; any other missing file is. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand %s: %w", path, err)
	}

	md, err := toml.DecodeFile(expanded, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
			return cfg, cfg.ExpandPaths()
		}
		return cfg, fmt.Errorf("load config %s: %w", expanded, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", expanded, strings.Join(keys, ", "))
	}

	if err := cfg.ExpandPaths(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ExpandPaths expands a leading ~ in the file and directory settings.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{&c.LogFile, &c.WatchDir, &c.OutDir} {
		if *p == "" {
			continue
		}
		v, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %s: %w", *p, err)
		}
		*p = v
	}
	return nil
}

// Validate checks value ranges and the channel operation syntax.
func (c Config) Validate() error {
	switch {
	case c.MaxFactor < 1:
		return fmt.Errorf("max_factor must be >= 1, got %v", c.MaxFactor)
	case c.HarmonizeProximity < 0:
		return fmt.Errorf("harmonize_proximity must be >= 0, got %v", c.HarmonizeProximity)
	case c.Workers < 1:
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	case c.BlockSize < 1:
		return fmt.Errorf("block_size must be >= 1, got %d", c.BlockSize)
	case c.WatchSettle < 0:
		return fmt.Errorf("watch_settle must be >= 0, got %v", c.WatchSettle)
	case (c.WatchDir == "") != (c.OutDir == ""):
		return errors.New("watch_dir and out_dir must be set together")
	}

	if _, err := c.Window(); err != nil {
		return fmt.Errorf("analysis_window: %w", err)
	}

	if c.Channels != "" {
		if _, err := ParseChannelOps(c.Channels); err != nil {
			return err
		}
	}
	return nil
}

// Window returns the analysis window named by AnalysisWindow.
func (c Config) Window() (window.Type, error) {
	return window.ParseType(c.AnalysisWindow)
}

// Exists reports whether path names an existing file after ~ expansion.
func Exists(path string) bool {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(expanded)
	return err == nil
}
