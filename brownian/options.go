package brownian

import (
	"log/slog"

	"github.com/meenmo/lattice/config"
	"github.com/meenmo/lattice/gauss"
	"github.com/meenmo/lattice/ind"
	"github.com/meenmo/lattice/interp"
)

// Option customizes a grid.
type Option func(*options)

type options struct {
	quality  float64
	rollback gauss.Scheme
	ind      ind.Scheme
	interp   interp.Scheme
	logger   *slog.Logger
}

func defaults() options {
	return options{
		quality:  config.GetConfig().Quality,
		rollback: gauss.Improved(),
		ind:      ind.Smart{},
		interp:   interp.Spline{},
		logger:   slog.Default(),
	}
}

// WithQuality sets the grid quality. Values below 1 mean 1.
func WithQuality(q float64) Option {
	return func(o *options) { o.quality = q }
}

// WithRollback sets the transition scheme. Panics on nil.
func WithRollback(s gauss.Scheme) Option {
	if s == nil {
		panic("brownian: WithRollback(nil)")
	}
	return func(o *options) { o.rollback = s }
}

// WithIndicator sets the discontinuity smoother. Panics on nil.
func WithIndicator(s ind.Scheme) Option {
	if s == nil {
		panic("brownian: WithIndicator(nil)")
	}
	return func(o *options) { o.ind = s }
}

// WithInterp sets the scheme used by Interpolate. Panics on nil.
func WithInterp(s interp.Scheme) Option {
	if s == nil {
		panic("brownian: WithInterp(nil)")
	}
	return func(o *options) { o.interp = s }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("brownian: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}
