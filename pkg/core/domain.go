// Package core holds the domain of notemint: document references, vault
// events, the ports to the hosting document store, and the eligibility
// rules that decide which notes get renamed.
package core

import (
	"context"
	"fmt"
	"strings"
)

// DocumentRef is an opaque handle to a stored note. The core never owns
// the underlying file; it only observes it and requests mutations through
// the Store port.
//
// Path is slash-separated and relative to the vault root, with no leading
// or trailing slashes. The last segment is the filename with extension.
type DocumentRef struct {
	Path string
}

// NormalizePath converts p to the canonical slash-separated relative form.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.Trim(p, "/")
}

// Name returns the last path segment (filename with extension).
func (d DocumentRef) Name() string {
	if i := strings.LastIndex(d.Path, "/"); i >= 0 {
		return d.Path[i+1:]
	}
	return d.Path
}

// Parent returns the immediate parent path, or "" for the vault root.
func (d DocumentRef) Parent() string {
	if i := strings.LastIndex(d.Path, "/"); i >= 0 {
		return d.Path[:i]
	}
	return ""
}

// Ext returns the filename extension including the dot, or "".
func (d DocumentRef) Ext() string {
	name := d.Name()
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}

// Stem returns the filename without its extension.
func (d DocumentRef) Stem() string {
	name := d.Name()
	return strings.TrimSuffix(name, d.Ext())
}

// EventType represents the type of change observed in the vault.
type EventType string

const (
	// EventCreate covers both a newly created note and a note moved into
	// a watched location. The watcher does not distinguish the two.
	EventCreate EventType = "CREATE"
)

// Event represents a change observed in the vault.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}

// Store is the port to the external document store. Implementations
// resolve, read, and rename notes; the core decides when to do so.
type Store interface {
	// Resolve looks a note up by its vault-relative path. It returns
	// ErrNotFound if the path does not exist or is not a regular file.
	Resolve(ctx context.Context, path string) (DocumentRef, error)

	// ReadContent returns the current content of the note. Content may
	// change between reads; callers must not cache across decisions.
	ReadContent(ctx context.Context, ref DocumentRef) (string, error)

	// Rename moves the note to newPath. It fails with ErrTargetExists
	// rather than overwrite an existing entry.
	Rename(ctx context.Context, ref DocumentRef, newPath string) error
}

// Lister is implemented by stores that can enumerate the direct entries
// of a folder. Used by the one-shot scan; optional for the event path.
type Lister interface {
	// ListDir returns refs for the regular files directly inside dir
	// (no recursion).
	ListDir(ctx context.Context, dir string) ([]DocumentRef, error)
}

// Notifier surfaces best-effort, user-visible messages. Implementations
// must not block and must never fail the caller.
type Notifier interface {
	Notify(message string)
}
