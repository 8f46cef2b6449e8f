package notemint

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/quiverd/notemint/pkg/adapters/fs"
	"github.com/quiverd/notemint/pkg/config"
	"github.com/quiverd/notemint/pkg/core"
	"github.com/quiverd/notemint/pkg/renamer"
)

// Version exposes the version of the application.
const Version = "0.2.0"

// watchable is implemented by stores that can emit creation events.
type watchable interface {
	Watch(ctx context.Context, locations func() []string) (<-chan core.Event, error)
}

// stoppable is implemented by stores whose watcher supports an explicit,
// awaited shutdown.
type stoppable interface {
	StopWatch(ctx context.Context) error
}

// Runtime bundles the wired components: the settings store, the document
// store, and the rename orchestrator. Create one with New, then Start it
// to begin watching, or use the Orchestrator directly for one-shot
// operations (RenameNow, Scan).
type Runtime struct {
	Settings     *config.Store
	Store        core.Store
	Orchestrator *renamer.Orchestrator

	cancel context.CancelFunc
	done   chan struct{}
}

// New wires a runtime for the vault at vaultPath.
func New(vaultPath string, opts ...Option) (*Runtime, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	settings := o.configStore
	if settings == nil {
		settings = config.NewStore(o.settings, o.logger)
	}

	store := o.store
	if store == nil {
		fsStore, err := fs.NewStore(fs.Config{
			Path:    vaultPath,
			Pattern: o.pattern,
			Logger:  o.logger,
		})
		if err != nil {
			return nil, err
		}
		store = fsStore
	}

	notifier := o.notifier
	if notifier == nil {
		notifier = NewConsoleNotifier(nil)
	}

	orch := renamer.New(renamer.Config{
		Store:       store,
		Settings:    settings,
		Notifier:    notifier,
		Logger:      o.logger,
		SettleDelay: o.settleDelay,
	})

	return &Runtime{
		Settings:     settings,
		Store:        store,
		Orchestrator: orch,
	}, nil
}

// Start begins watching the vault and feeding creation events to the
// orchestrator. It returns once the watcher is running; the pipeline
// itself runs on supervised goroutines until Stop or ctx cancellation.
func (r *Runtime) Start(ctx context.Context) error {
	if r.done != nil {
		return errors.New("runtime already started")
	}

	w, ok := r.Store.(watchable)
	if !ok {
		return errors.New("store does not support watching")
	}

	runCtx, cancel := context.WithCancel(ctx)

	events, err := w.Watch(runCtx, func() []string {
		return r.Settings.Snapshot().BaseLocations
	})
	if err != nil {
		cancel()
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	r.cancel = cancel
	r.done = make(chan struct{})

	lifecycle.Go(runCtx, func(ctx context.Context) error {
		defer close(r.done)
		return r.Orchestrator.Run(ctx, events)
	})

	return nil
}

// Stop halts the pipeline: the watch worker is stopped and awaited (it
// drains its debouncer before closing the event channel), then the
// orchestrator loop. Pending renames that have not fired are simply lost;
// nothing is persisted or resumed.
func (r *Runtime) Stop(ctx context.Context) error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()

	if s, ok := r.Store.(stoppable); ok {
		if err := s.StopWatch(ctx); err != nil {
			return err
		}
	}

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
