package notemint

import (
	"log/slog"
	"time"

	"github.com/quiverd/notemint/pkg/config"
	"github.com/quiverd/notemint/pkg/core"
)

// options holds the internal configuration for the runtime.
type options struct {
	settings    config.Settings
	configStore *config.Store
	store       core.Store
	notifier    core.Notifier
	logger      *slog.Logger
	settleDelay time.Duration
	pattern     string
}

// Option defines a functional option for configuring the runtime.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithSettings sets the initial settings (base locations, ignore
// patterns). Ignored when WithConfigStore is also given.
func WithSettings(settings config.Settings) Option {
	return func(o *options) {
		o.settings = settings
	}
}

// WithConfigStore injects a shared settings store, e.g. one that a
// settings UI mutates while the runtime is live.
func WithConfigStore(store *config.Store) Option {
	return func(o *options) {
		o.configStore = store
	}
}

// WithStore injects a custom document store (e.g. a mock). If provided,
// the default filesystem adapter is skipped and watching is unavailable
// unless the store provides it.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithNotifier sets the user-visible notification sink. Defaults to
// stdout.
func WithNotifier(n core.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSettleDelay overrides the default settling delay.
func WithSettleDelay(delay time.Duration) Option {
	return func(o *options) {
		o.settleDelay = delay
	}
}

// WithPattern overrides the watcher's filename pattern (default "*.md").
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}
