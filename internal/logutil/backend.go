// Package logutil wires decred/slog loggers to stdout and a rotating log
// file.
package logutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

const (
	rotateThresholdKB = 1024
	rotateMaxRolls    = 10
)

// Backend fans log lines out to stdout and an optional rotating file and
// hands out per-subsystem loggers.
type Backend struct {
	stdOut     io.Writer
	logRotator *rotator.Rotator
	bknd       *slog.Backend

	defaultLevel slog.Level
	levels       map[string]slog.Level

	mtx     sync.Mutex
	loggers map[string]slog.Logger
}

// NewBackend creates a backend. levelSpec is either a single level
// ("debug") or a default followed by subsystem overrides
// ("info,LVLR=debug"). logFile may be empty to log to stdOut only; stdOut
// may be nil to log to the file only.
func NewBackend(logFile, levelSpec string, stdOut io.Writer) (*Backend, error) {
	b := &Backend{
		stdOut:       stdOut,
		defaultLevel: slog.LevelInfo,
		levels:       make(map[string]slog.Level),
		loggers:      make(map[string]slog.Logger),
	}
	if err := b.parseLevels(levelSpec); err != nil {
		return nil, err
	}

	if logFile != "" {
		logDir, _ := filepath.Split(logFile)
		if logDir != "" {
			if err := os.MkdirAll(logDir, 0o700); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		r, err := rotator.New(logFile, rotateThresholdKB, false, rotateMaxRolls)
		if err != nil {
			return nil, fmt.Errorf("failed to create file rotator: %w", err)
		}
		b.logRotator = r
	}

	b.bknd = slog.NewBackend(b)
	return b, nil
}

func (b *Backend) parseLevels(spec string) error {
	if spec == "" {
		return nil
	}
	for _, v := range strings.Split(spec, ",") {
		fields := strings.Split(v, "=")
		switch len(fields) {
		case 1:
			level, ok := slog.LevelFromString(fields[0])
			if !ok {
				return fmt.Errorf("unknown log level %q", fields[0])
			}
			b.defaultLevel = level
		case 2:
			level, ok := slog.LevelFromString(fields[1])
			if !ok {
				return fmt.Errorf("unknown log level %q for subsystem %s", fields[1], fields[0])
			}
			b.levels[fields[0]] = level
		default:
			return fmt.Errorf("unable to parse %q as subsys=level "+
				"log level string", v)
		}
	}
	return nil
}

// Write implements io.Writer for the slog backend.
func (b *Backend) Write(p []byte) (int, error) {
	if b.stdOut != nil {
		b.stdOut.Write(p)
	}
	if b.logRotator != nil {
		b.logRotator.Write(p)
	}
	return len(p), nil
}

// Logger returns the logger for subsys, creating it on first use.
func (b *Backend) Logger(subsys string) slog.Logger {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if l, ok := b.loggers[subsys]; ok {
		return l
	}

	l := b.bknd.Logger(subsys)
	if level, ok := b.levels[subsys]; ok {
		l.SetLevel(level)
	} else {
		l.SetLevel(b.defaultLevel)
	}
	b.loggers[subsys] = l
	return l
}

// Close flushes and closes the log file, if any.
func (b *Backend) Close() error {
	if b.logRotator == nil {
		return nil
	}
	return b.logRotator.Close()
}
