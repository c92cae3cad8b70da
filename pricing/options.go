package pricing

import (
	"log/slog"

	"github.com/meenmo/lattice/approx"
)

// Option customizes a Model.
type Option func(*options)

type options struct {
	schemes []approx.Scheme
	workers int
	logger  *slog.Logger
}

// WithSchemes sets the approximation schemes of the added states: the k-th
// call to AddState uses the k-th scheme, and the last scheme is reused once
// the list runs out. Panics on an empty list or a nil scheme.
func WithSchemes(schemes ...approx.Scheme) Option {
	if len(schemes) == 0 {
		panic("pricing: WithSchemes needs at least one scheme")
	}
	for _, s := range schemes {
		if s == nil {
			panic("pricing: WithSchemes(nil)")
		}
	}
	return func(o *options) { o.schemes = append([]approx.Scheme(nil), schemes...) }
}

// WithWorkers bounds the goroutines used by the rollback of added states.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("pricing: WithWorkers needs at least one worker")
	}
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("pricing: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}
