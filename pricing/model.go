// Package pricing is the interface instrument code prices against: a
// diffusion lattice over an event timeline with any number of
// path-dependent states layered on top.
package pricing

import (
	"fmt"
	"log/slog"

	"github.com/meenmo/lattice/approx"
	"github.com/meenmo/lattice/config"
	"github.com/meenmo/lattice/extend"
	"github.com/meenmo/lattice/function"
	"github.com/meenmo/lattice/numerr"
	"github.com/meenmo/lattice/payoff"
	"github.com/meenmo/lattice/utils"
)

// Diffusion builds the base lattice of a concrete model.
type Diffusion interface {
	// InitialTime is the first event time of every timeline.
	InitialTime() float64
	// Build returns the lattice of the model over the event times.
	Build(eventTimes []float64) (payoff.Model, error)
}

// Model is a diffusion lattice plus a chain of added states. Payoffs from
// State and Cash belong to the Model and stay valid until the next
// AssignEventTimes.
//
// A Model must not be shared by goroutines that reassign its timeline or
// add states.
type Model struct {
	diffusion Diffusion
	base      payoff.Model
	chain     []*extend.Model
	schemes   []approx.Scheme
	workers   int
	logger    *slog.Logger
}

// New returns the model of d over eventTimes.
func New(d Diffusion, eventTimes []float64, opts ...Option) (*Model, error) {
	o := options{
		workers: config.GetConfig().Workers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.schemes == nil {
		o.schemes = []approx.Scheme{approx.Default()}
	}
	m := &Model{
		diffusion: d,
		schemes:   o.schemes,
		workers:   o.workers,
		logger:    o.logger,
	}
	if err := m.AssignEventTimes(eventTimes); err != nil {
		return nil, err
	}
	return m, nil
}

// AssignEventTimes rebuilds the lattice over a new timeline and discards
// all added states. The timeline must be strictly increasing and start at
// the initial time of the diffusion.
func (m *Model) AssignEventTimes(eventTimes []float64) error {
	if len(eventTimes) == 0 {
		return numerr.Size("pricing.AssignEventTimes: empty timeline")
	}
	if !utils.IsIncreasing(eventTimes) {
		return numerr.Sort("pricing.AssignEventTimes: event times")
	}
	if eventTimes[0] != m.diffusion.InitialTime() {
		return numerr.Range(fmt.Sprintf("pricing.AssignEventTimes: timeline starts at %v, model at %v",
			eventTimes[0], m.diffusion.InitialTime()))
	}
	base, err := m.diffusion.Build(append([]float64(nil), eventTimes...))
	if err != nil {
		return fmt.Errorf("pricing.AssignEventTimes: %w", err)
	}
	m.base = base
	m.chain = nil
	m.logger.Debug("event times assigned", "event_times", len(eventTimes), "states", base.NumberOfStates())
	return nil
}

// AddState adds a path-dependent state and returns its index.
func (m *Model) AddState(spec extend.Spec) (int, error) {
	k := len(m.chain)
	if k >= len(m.schemes) {
		k = len(m.schemes) - 1
	}
	ext, err := extend.New(spec, m.top(), m.schemes[k],
		extend.WithWorkers(m.workers), extend.WithLogger(m.logger))
	if err != nil {
		return 0, fmt.Errorf("pricing.AddState: %w", err)
	}
	m.chain = append(m.chain[:len(m.chain):len(m.chain)], ext)
	return ext.Index(), nil
}

// Cash returns the deterministic amount at event time time.
func (m *Model) Cash(time int, amount float64) *payoff.Payoff {
	return payoff.Constant(m, time, amount)
}

// Extension returns the added state with the given index, or nil when the
// index belongs to the diffusion.
func (m *Model) Extension(state int) *extend.Model {
	k := state - m.base.NumberOfStates()
	if k < 0 || k >= len(m.chain) {
		return nil
	}
	return m.chain[k]
}

func (m *Model) top() payoff.Model {
	if len(m.chain) == 0 {
		return m.base
	}
	return m.chain[len(m.chain)-1]
}

func (m *Model) EventTimes() []float64 { return m.base.EventTimes() }

func (m *Model) NumberOfStates() int { return m.top().NumberOfStates() }

func (m *Model) NumberOfNodes(time int, deps []int) int {
	return m.top().NumberOfNodes(time, deps)
}

func (m *Model) Origin() []float64 { return m.top().Origin() }

// State returns the state process index at event time time.
func (m *Model) State(time, index int) *payoff.Payoff {
	s := m.top().State(time, index)
	s.Bind(m)
	return s
}

func (m *Model) AddDependence(p *payoff.Payoff, deps []int) {
	top := m.top()
	p.Bind(top)
	top.AddDependence(p, deps)
	p.Bind(m)
}

func (m *Model) Rollback(p *payoff.Payoff, time int) {
	top := m.top()
	p.Bind(top)
	top.Rollback(p, time)
	p.Bind(m)
}

func (m *Model) Indicator(p *payoff.Payoff, barrier float64) {
	top := m.top()
	p.Bind(top)
	top.Indicator(p, barrier)
	p.Bind(m)
}

func (m *Model) Interpolate(p *payoff.Payoff) function.Multi {
	top := m.top()
	return top.Interpolate(payoff.New(top, p.Time(), p.Deps(), p.Values()))
}
