// Package fs implements the core ports against the local filesystem:
// resolving, reading, and renaming notes under a vault root, and watching
// base locations for newly created notes via fsnotify.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/quiverd/notemint/pkg/core"
)

// DefaultPattern filters which filenames the watcher reports.
const DefaultPattern = "*.md"

// Config holds the configuration for the filesystem store.
type Config struct {
	// Path is the vault root. Must exist and be a directory.
	Path string

	// Pattern is a doublestar filename pattern for watch events.
	// Defaults to DefaultPattern.
	Pattern string

	Logger *slog.Logger

	// ErrorHandler receives watcher errors. Optional; errors are logged
	// either way.
	ErrorHandler func(error)
}

// Store implements core.Store and core.Lister on the local filesystem.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	worker        *watchWorker
}

// NewStore creates a filesystem store rooted at config.Path.
func NewStore(config Config) (*Store, error) {
	info, err := os.Stat(config.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("vault path does not exist: %s", config.Path)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", config.Path)
	}

	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}

	abs, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, err
	}

	return &Store{Path: abs, config: config}, nil
}

// fullPath resolves a vault-relative path to an absolute one, refusing
// anything that would land outside the vault root. The mirror image of
// the relPath guard, applied to outbound resolution.
func (s *Store) fullPath(p string) (string, error) {
	p = path.Clean(filepath.ToSlash(p))
	if p == ".." || strings.HasPrefix(p, "../") || path.IsAbs(p) {
		return "", fmt.Errorf("%s escapes the vault root", p)
	}
	return filepath.Join(s.Path, filepath.FromSlash(p)), nil
}

// relPath converts an absolute filesystem path into the vault-relative
// slash form, or ok=false when the path is outside the vault.
func (s *Store) relPath(full string) (string, bool) {
	rel, err := filepath.Rel(s.Path, full)
	if err != nil || filepath.IsAbs(rel) {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// Resolve implements core.Store. Anything that is not a regular file
// resolves to core.ErrNotFound.
func (s *Store) Resolve(ctx context.Context, path string) (core.DocumentRef, error) {
	path = core.NormalizePath(path)

	full, err := s.fullPath(path)
	if err != nil {
		return core.DocumentRef{}, fmt.Errorf("%s: %w", path, core.ErrNotFound)
	}
	info, err := os.Stat(full)
	if err != nil {
		return core.DocumentRef{}, fmt.Errorf("%s: %w", path, core.ErrNotFound)
	}
	if !info.Mode().IsRegular() {
		return core.DocumentRef{}, fmt.Errorf("%s is not a regular file: %w", path, core.ErrNotFound)
	}
	return core.DocumentRef{Path: path}, nil
}

// ReadContent implements core.Store.
func (s *Store) ReadContent(ctx context.Context, ref core.DocumentRef) (string, error) {
	full, err := s.fullPath(ref.Path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", ref.Path, err)
	}
	return string(data), nil
}

// Rename implements core.Store. It refuses to clobber an existing target:
// identifier collisions are accepted as a design risk, but they must
// surface as a failed rename, never as silent data loss.
func (s *Store) Rename(ctx context.Context, ref core.DocumentRef, newPath string) error {
	newPath = core.NormalizePath(newPath)
	target, err := s.fullPath(newPath)
	if err != nil {
		return err
	}
	source, err := s.fullPath(ref.Path)
	if err != nil {
		return err
	}

	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%s: %w", newPath, core.ErrTargetExists)
	}

	if err := os.Rename(source, target); err != nil {
		return fmt.Errorf("failed to rename %s: %w", ref.Path, err)
	}

	if s.config.Logger != nil {
		s.config.Logger.Debug("renamed on disk", "old", ref.Path, "new", newPath)
	}
	return nil
}

// ListDir implements core.Lister: the regular files directly inside dir,
// no recursion.
func (s *Store) ListDir(ctx context.Context, dir string) ([]core.DocumentRef, error) {
	dir = core.NormalizePath(dir)

	full, err := s.fullPath(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var refs []core.DocumentRef
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := entry.Name()
		if dir != "" {
			path = dir + "/" + path
		}
		refs = append(refs, core.DocumentRef{Path: path})
	}
	return refs, nil
}

// Watch starts the fsnotify watch worker and returns the event channel.
// locations supplies the current base-location set; it is consulted at
// start and whenever a new directory appears, so a base location created
// after startup still gets watched. The channel closes when the worker
// stops.
func (s *Store) Watch(ctx context.Context, locations func() []string) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)
	w := newWatchWorker(s, s.config.Pattern, locations, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.worker = w
	s.mu.Unlock()

	return events, nil
}

// StopWatch stops the watch worker and waits for it to wind down,
// bounded by ctx. No-op when nothing is watching.
func (s *Store) StopWatch(ctx context.Context) error {
	s.mu.Lock()
	w := s.worker
	s.worker = nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Stop(ctx)
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
