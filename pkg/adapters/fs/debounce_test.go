package fs

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/quiverd/notemint/pkg/core"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	e := core.Event{Type: core.EventCreate, Path: "Inbox/Note.md"}
	for i := 0; i < 5; i++ {
		d.add(e, func(core.Event) { fired.Add(1) })
	}

	waitFor(t, func() bool { return fired.Load() == 1 })
	time.Sleep(50 * time.Millisecond) // no further deliveries
	d.stopAndWait(time.Second)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}

func TestDebouncerKeysByPath(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)

	var fired atomic.Int32
	d.add(core.Event{Path: "a.md"}, func(core.Event) { fired.Add(1) })
	d.add(core.Event{Path: "b.md"}, func(core.Event) { fired.Add(1) })

	waitFor(t, func() bool { return fired.Load() == 2 })
	d.stopAndWait(time.Second)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDebouncerStopDropsPending(t *testing.T) {
	d := newDebouncer(time.Hour)

	var fired atomic.Int32
	d.add(core.Event{Path: "a.md"}, func(core.Event) { fired.Add(1) })

	d.stopAndWait(time.Second)
	if got := fired.Load(); got != 0 {
		t.Errorf("pending timer fired after stop")
	}

	// After stop, add is a no-op.
	d.add(core.Event{Path: "b.md"}, func(core.Event) { fired.Add(1) })
	time.Sleep(20 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("add after stop should not fire")
	}
}
