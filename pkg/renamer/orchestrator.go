// Package renamer drives the rename pipeline: it consumes vault creation
// events, lets new notes settle, re-verifies eligibility against live
// state, and commits each rename exactly once.
package renamer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quiverd/notemint/pkg/config"
	"github.com/quiverd/notemint/pkg/core"
	"github.com/quiverd/notemint/pkg/identifier"
)

// DefaultSettleDelay is the pause between a creation event and the
// re-verification pass. Long enough for templating tools to finish
// writing initial content, short enough to feel immediate.
const DefaultSettleDelay = 1500 * time.Millisecond

// Config holds the orchestrator's collaborators.
type Config struct {
	Store    core.Store
	Settings *config.Store
	Notifier core.Notifier
	Logger   *slog.Logger

	// SettleDelay overrides DefaultSettleDelay when > 0.
	SettleDelay time.Duration

	// Generate overrides the identifier source. Tests inject a fixed one.
	Generate func() string
}

// Rename records one committed (or planned) rename.
type Rename struct {
	OldPath string
	NewPath string
}

// Orchestrator is the stateful driver of the rename pipeline. Each
// qualifying event owns an independent pending token; there is no
// cross-event locking and no state survives a restart.
type Orchestrator struct {
	store    core.Store
	settings *config.Store
	notifier core.Notifier
	logger   *slog.Logger
	delay    time.Duration
	generate func() string

	mu      sync.Mutex
	pending int
	renamed int
	skipped int
	failed  int
}

// New creates an orchestrator. Store and Settings are required.
func New(cfg Config) *Orchestrator {
	delay := cfg.SettleDelay
	if delay <= 0 {
		delay = DefaultSettleDelay
	}
	generate := cfg.Generate
	if generate == nil {
		generate = identifier.Generate
	}
	return &Orchestrator{
		store:    cfg.Store,
		settings: cfg.Settings,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		delay:    delay,
		generate: generate,
	}
}

// Run consumes creation events until the channel closes or ctx is done.
// Pending tokens scheduled before shutdown may still fire; an interrupted
// one simply never completes.
func (o *Orchestrator) Run(ctx context.Context, events <-chan core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			o.handle(ctx, e)
		}
	}
}

// handle is the cheap synchronous filter. Content is not read here; the
// template-marker check only happens at verification time.
func (o *Orchestrator) handle(ctx context.Context, e core.Event) {
	if e.Type != core.EventCreate {
		return
	}

	path := core.NormalizePath(e.Path)
	rules := o.settings.Snapshot()

	if d := core.Evaluate(path, "", rules); !d.Eligible {
		o.countSkip()
		if o.logger != nil {
			o.logger.Debug("event filtered", "path", path, "reason", d.Reason)
		}
		return
	}

	o.addPending(1)
	if o.logger != nil {
		o.logger.Debug("rename pending", "path", path, "delay", o.delay)
	}

	time.AfterFunc(o.delay, func() {
		defer o.addPending(-1)
		o.settle(ctx, path)
	})
}

// settle is the delayed re-check: resolve the note by its original path,
// re-read its content, and re-run the full eligibility evaluation against
// a fresh configuration snapshot. Every abort here is silent; races with
// other tools are expected, not errors.
func (o *Orchestrator) settle(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	ref, err := o.store.Resolve(ctx, path)
	if err != nil {
		o.countSkip()
		if o.logger != nil {
			o.logger.Debug("note gone before verification", "path", path, "error", err)
		}
		return
	}

	content, err := o.store.ReadContent(ctx, ref)
	if err != nil {
		o.countSkip()
		if o.logger != nil {
			o.logger.Debug("note unreadable at verification", "path", path, "error", err)
		}
		return
	}

	if d := core.Evaluate(ref.Path, content, o.settings.Snapshot()); !d.Eligible {
		o.countSkip()
		if o.logger != nil {
			o.logger.Debug("note no longer eligible", "path", path, "reason", d.Reason)
		}
		return
	}

	o.commit(ctx, ref)
}

// commit generates the identifier, performs the rename, and surfaces the
// outcome. Failures are logged and notified but never retried: the note
// stays under its original name until it is independently moved or
// recreated.
func (o *Orchestrator) commit(ctx context.Context, ref core.DocumentRef) (string, error) {
	id := o.generate()

	newPath := id + ref.Ext()
	if parent := ref.Parent(); parent != "" {
		newPath = parent + "/" + newPath
	}
	newRef := core.DocumentRef{Path: newPath}

	if err := o.store.Rename(ctx, ref, newPath); err != nil {
		o.countFail()
		if o.logger != nil {
			o.logger.Error("rename failed", "path", ref.Path, "target", newPath, "error", err)
		}
		o.notify(fmt.Sprintf("Could not rename %q: %v", ref.Name(), err))
		return "", err
	}

	o.countRename()
	if o.logger != nil {
		o.logger.Info("note renamed", "old", ref.Path, "new", newPath)
	}
	o.notify(fmt.Sprintf("Renamed %q to %q", ref.Name(), newRef.Name()))
	return newPath, nil
}

// RenameNow renames a single note immediately, on the user's explicit
// request. It requires at least one configured base location but skips
// the location membership check; the remaining gates (already an
// identifier, ignore rules, template marker) still apply. Returns the new
// vault-relative path.
func (o *Orchestrator) RenameNow(ctx context.Context, path string) (string, error) {
	rules := o.settings.Snapshot()
	if len(rules.BaseLocations) == 0 {
		return "", core.ErrNoBaseLocations
	}

	path = core.NormalizePath(path)
	ref, err := o.store.Resolve(ctx, path)
	if err != nil {
		return "", err
	}

	content, err := o.store.ReadContent(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if d := core.EvaluateCommand(ref.Path, content, rules); !d.Eligible {
		return "", fmt.Errorf("%w: %s", core.ErrNotEligible, d.Reason)
	}

	return o.commit(ctx, ref)
}

// Scan walks the direct entries of every configured base location and
// renames the ones that qualify. It covers notes created while no watcher
// was running. With dryRun the planned renames are returned uncommitted.
func (o *Orchestrator) Scan(ctx context.Context, dryRun bool) ([]Rename, error) {
	lister, ok := o.store.(core.Lister)
	if !ok {
		return nil, errors.New("store does not support directory listing")
	}

	rules := o.settings.Snapshot()
	if len(rules.BaseLocations) == 0 {
		return nil, core.ErrNoBaseLocations
	}

	var renames []Rename
	for _, loc := range rules.BaseLocations {
		refs, err := lister.ListDir(ctx, loc)
		if err != nil {
			if o.logger != nil {
				o.logger.Debug("skipping unreadable base location", "location", loc, "error", err)
			}
			continue
		}

		for _, ref := range refs {
			if ctx.Err() != nil {
				return renames, ctx.Err()
			}

			content, err := o.store.ReadContent(ctx, ref)
			if err != nil {
				continue
			}
			if d := core.Evaluate(ref.Path, content, rules); !d.Eligible {
				continue
			}

			if dryRun {
				newPath := o.generate() + ref.Ext()
				if parent := ref.Parent(); parent != "" {
					newPath = parent + "/" + newPath
				}
				renames = append(renames, Rename{OldPath: ref.Path, NewPath: newPath})
				continue
			}

			newPath, err := o.commit(ctx, ref)
			if err != nil {
				continue
			}
			renames = append(renames, Rename{OldPath: ref.Path, NewPath: newPath})
		}
	}
	return renames, nil
}

func (o *Orchestrator) notify(message string) {
	if o.notifier != nil {
		o.notifier.Notify(message)
	}
}

func (o *Orchestrator) addPending(delta int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending += delta
}

func (o *Orchestrator) countRename() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.renamed++
}

func (o *Orchestrator) countSkip() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skipped++
}

func (o *Orchestrator) countFail() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed++
}
