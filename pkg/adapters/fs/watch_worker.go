package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/quiverd/notemint/pkg/core"
)

type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	pattern   string
	locations func() []string
	events    chan<- core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(store *Store, pattern string, locations func() []string, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		pattern:    pattern,
		locations:  locations,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(w.store.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch vault root: %w", err)
	}
	w.addLocationWatches(watcher)

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// addLocationWatches registers every currently configured base location.
// Missing directories are skipped; they are picked up by watchNewDir when
// they appear.
func (w *watchWorker) addLocationWatches(watcher *fsnotify.Watcher) {
	for _, loc := range w.locations() {
		full, err := w.store.fullPath(loc)
		if err != nil {
			if w.store.config.Logger != nil {
				w.store.config.Logger.Warn("skipping base location", "location", loc, "err", err)
			}
			continue
		}
		if err := watcher.Add(full); err != nil {
			if w.store.config.Logger != nil {
				w.store.config.Logger.Debug("base location not watchable yet", "location", loc, "err", err)
			}
		}
	}
}

// watchNewDir adds a freshly created directory to the watcher when it is,
// or leads to, a configured base location. Watching stays non-recursive;
// only exact base locations and their ancestors are registered.
func (w *watchWorker) watchNewDir(rel string) {
	for _, loc := range w.locations() {
		if rel == loc || isPathPrefix(rel, loc) {
			full, err := w.store.fullPath(rel)
			if err != nil {
				return
			}
			if err := w.watcher.Add(full); err == nil {
				if w.store.config.Logger != nil {
					w.store.config.Logger.Debug("watching new directory", "path", rel)
				}
			}
			return
		}
	}
}

// isPathPrefix reports whether prefix is a proper path-segment prefix of
// path ("Notes" leads to "Notes/Fleeting", "No" does not).
func isPathPrefix(prefix, path string) bool {
	return len(path) > len(prefix) && path[:len(prefix)] == prefix && path[len(prefix)] == '/'
}

// processFilesystemEvent handles filtering, mapping, and debouncing of
// filesystem events.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) (processed bool) {
	if w.store.config.Logger != nil {
		w.store.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
	}

	// A note moved into a watched directory surfaces as Create on the
	// destination path, same as a genuine creation.
	if !event.Has(fsnotify.Create) {
		return false
	}

	rel, ok := w.store.relPath(event.Name)
	if !ok {
		return false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Gone already; the verification pass would have dropped it anyway.
		return false
	}
	if info.IsDir() {
		w.watchNewDir(rel)
		return false
	}
	if !info.Mode().IsRegular() {
		return false
	}

	if match, err := doublestar.Match(w.pattern, filepath.Base(event.Name)); err != nil || !match {
		return false
	}

	w.sendEvent(ctx, core.Event{
		Type:      core.EventCreate,
		Path:      rel,
		Timestamp: time.Now().Unix(),
	})

	return true
}

// sendEvent enqueues an event via the debouncer, protecting against
// channel closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			// Recover from panic if channel was closed (worker stopping)
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// handleWatcherError processes errors from the fsnotify watcher.
func (w *watchWorker) handleWatcherError(err error) (shouldContinue bool) {
	if w.store.config.Logger != nil {
		w.store.config.Logger.Error("fsnotify error", "error", err)
	}
	if w.store.config.ErrorHandler != nil {
		w.store.config.ErrorHandler(err)
	}
	return true
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			// Stack only when debug logging is enabled.
			var stack string
			if w.store.config.Logger != nil && w.store.config.Logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}

			if w.store.config.Logger != nil {
				if stack != "" {
					w.store.config.Logger.Error("watcher panic", "error", panicErr, "stack", stack)
				} else {
					w.store.config.Logger.Error("watcher panic", "error", panicErr)
				}
			}
		}
	}()
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Shutdown debouncer: stop accepting new events and wait for all
	// in-flight timers before the events channel is closed.
	w.debouncer.stopAndWait(5 * time.Second)
	close(w.events)

	return err
}

// mainEventLoop is the core select loop processing filesystem and watcher
// error events.
func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}
