package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"depman/pkg/logging"
)

// DefaultDebounceInterval is how long Watch waits for further writes before
// re-running a script.
const DefaultDebounceInterval = 200 * time.Millisecond

// RunFunc runs one script. Watch calls it once up front and again after
// every change to the script.
type RunFunc func(ctx context.Context, path string) error

// Watch runs path and then re-runs it whenever the file is created, written
// or replaced. The parent directory is watched so that editors which save by
// renaming a temporary file are followed. Errors returned by run are logged
// and do not stop the watch. Watch returns nil when ctx is cancelled.
func Watch(ctx context.Context, path string, debounce time.Duration, run RunFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	logging.Info("Watch", "Watching %s for changes", target)

	triggers := make(chan struct{}, 1)
	triggers <- struct{}{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-gctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != target || !isContentChange(event.Op) {
					continue
				}
				logging.Debug("Watch", "Change detected: %s", event)

				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					select {
					case triggers <- struct{}{}:
					default:
						// a run is already pending
					}
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logging.Error("Watch", err, "Filesystem watcher error")
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-triggers:
				if err := run(gctx, target); err != nil {
					logging.Error("Watch", err, "Run of %s failed", target)
				}
			}
		}
	})

	return g.Wait()
}

func isContentChange(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}
