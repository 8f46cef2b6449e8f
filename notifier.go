package notemint

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ConsoleNotifier surfaces user-visible messages on a writer, one per
// line. It is the default core.Notifier for CLI use: best effort, never
// returns an error to the caller.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleNotifier creates a notifier writing to out, or stdout when
// out is nil.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out}
}

// Notify implements core.Notifier.
func (n *ConsoleNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.out, message)
}
