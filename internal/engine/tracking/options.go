package tracking

import (
	"context"

	"go.uber.org/zap"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithNormalizer maps every line through fn before lines are compared.
func WithNormalizer(fn func(string) string) Option {
	return func(t *Tracker) {
		t.normalize = fn
	}
}

// WithContext sets the context used when fetching base versions.
func WithContext(ctx context.Context) Option {
	return func(t *Tracker) {
		t.ctx = ctx
	}
}
