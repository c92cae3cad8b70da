package extend

import (
	"log/slog"

	"github.com/meenmo/lattice/config"
)

// Option customizes an extension.
type Option func(*options)

type options struct {
	workers int
	logger  *slog.Logger
}

func defaults() options {
	return options{
		workers: config.GetConfig().Workers,
		logger:  slog.Default(),
	}
}

// WithWorkers bounds the goroutines that roll back and re-approximate the
// slices of one payoff. 1 runs everything on the calling goroutine. A
// panic in a worker, such as a payoff contract violation in a reset rule,
// is raised on the goroutine that called Rollback.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("extend: WithWorkers needs at least one worker")
	}
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("extend: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}
