package fs

import (
	"sync"
	"time"

	"github.com/quiverd/notemint/pkg/core"
)

// debouncer collapses bursts of events for the same path into one
// delivery. Editors often emit several creates/writes in quick
// succession; only the trailing event per path is forwarded.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire(event) after the debounce delay. While a delivery
// for the same path is pending, further events for it are dropped; one
// token per path is all the downstream pipeline needs.
func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if _, ok := d.timers[event.Path]; ok {
		return
	}

	d.wg.Add(1)
	d.timers[event.Path] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		delete(d.timers, event.Path)
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			fire(event)
		}
	})
}

// stopAndWait rejects new events and waits for in-flight timers to
// complete, up to timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for path, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, path)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
