package job

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/decred/slog"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// queueDepth bounds the number of files waiting to be leveled.
const queueDepth = 64

// WatchConfig describes a watch folder.
type WatchConfig struct {
	Dir    string
	OutDir string
	// Settle is the delay between a file appearing and leveling it, giving
	// the writer time to finish.
	Settle time.Duration
	// Template supplies everything but Input and Output of each job.
	Template Request
	// Done, if set, is called after every file with the job error.
	Done func(input string, err error)
}

// IsWAV reports whether name has a .wav extension.
func IsWAV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".wav")
}

// Watch levels every WAV file created in cfg.Dir into cfg.OutDir under the
// same name, one file at a time, until ctx is done. Failed files are logged
// and skipped.
func Watch(ctx context.Context, cfg WatchConfig) error {
	log := cfg.Template.Log
	if log == nil {
		log = slog.Disabled
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	same, err := sameDir(cfg.Dir, cfg.OutDir)
	if err != nil {
		return err
	}
	if same {
		return fmt.Errorf("watch directory %s is also the output directory", cfg.Dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.Dir, err)
	}
	log.Infof("Watching %s, writing to %s", cfg.Dir, cfg.OutDir)

	queue := make(chan string, queueDepth)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Create) || !IsWAV(event.Name) {
					continue
				}
				log.Debugf("Queued %s", event.Name)
				select {
				case queue <- event.Name:
				case <-gctx.Done():
					return nil
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Warnf("Watcher error: %v", err)
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		for input := range queue {
			if !sleep(gctx, cfg.Settle) {
				return nil
			}

			req := cfg.Template
			req.Input = input
			req.Output = filepath.Join(cfg.OutDir, filepath.Base(input))

			_, err := Run(gctx, req)
			switch {
			case err != nil && gctx.Err() != nil:
				return nil
			case err != nil:
				log.Errorf("Leveling %s failed: %v", input, err)
			}
			if cfg.Done != nil {
				cfg.Done(input, err)
			}
		}
		return nil
	})

	return g.Wait()
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func sameDir(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
