package payoff

import (
	"fmt"

	"github.com/meenmo/lattice/function"
	"github.com/meenmo/lattice/utils"
)

// Payoff is a random variable known at one event time of a model.
//
// Dependency sets are never modified in place and may be shared between
// payoffs. Values belong to the payoff.
type Payoff struct {
	model  Model
	time   int
	deps   []int
	values []float64
}

// New returns the payoff with the given values. The payoff takes ownership
// of deps and values.
func New(m Model, time int, deps []int, values []float64) *Payoff {
	p := &Payoff{model: m}
	p.Assign(time, deps, values)
	return p
}

// Constant returns the deterministic payoff v at event time time.
func Constant(m Model, time int, v float64) *Payoff {
	return New(m, time, nil, []float64{v})
}

func (p *Payoff) Model() Model { return p.model }
func (p *Payoff) Time() int    { return p.time }

// Deps returns the dependency set. Callers must not modify it.
func (p *Payoff) Deps() []int { return p.deps }

// Values returns the values. Callers may change them in place.
func (p *Payoff) Values() []float64 { return p.values }

// IsConstant reports whether p depends on no state.
func (p *Payoff) IsConstant() bool { return len(p.deps) == 0 }

// Assign replaces the time, dependencies and values of p.
func (p *Payoff) Assign(time int, deps []int, values []float64) {
	p.time, p.deps, p.values = time, deps, values
	p.check("payoff.Assign")
}

// Bind moves p to model m. Layered models use it to hand a payoff to the
// model beneath them and back.
func (p *Payoff) Bind(m Model) {
	p.model = m
	p.check("payoff.Bind")
}

func (p *Payoff) check(where string) {
	if p.model == nil {
		panic(where + ": nil model")
	}
	if p.time < 0 || p.time >= len(p.model.EventTimes()) {
		panic(fmt.Sprintf("%s: event time %d out of range", where, p.time))
	}
	if !utils.IsSet(p.deps) || (len(p.deps) > 0 && (p.deps[0] < 0 || p.deps[len(p.deps)-1] >= p.model.NumberOfStates())) {
		panic(fmt.Sprintf("%s: invalid dependency set %v", where, p.deps))
	}
	if want := p.model.NumberOfNodes(p.time, p.deps); len(p.values) != want {
		panic(fmt.Sprintf("%s: %d values, want %d", where, len(p.values), want))
	}
}

// Clone returns a deep copy of p.
func (p *Payoff) Clone() *Payoff {
	return &Payoff{
		model:  p.model,
		time:   p.time,
		deps:   p.deps,
		values: append([]float64(nil), p.values...),
	}
}

// ---- backward induction ----

// Rollback replaces p by its conditional expectation at event time time,
// which must not be after the time of p.
func (p *Payoff) Rollback(time int) {
	if time > p.time {
		panic(fmt.Sprintf("payoff.Rollback: target %d after current time %d", time, p.time))
	}
	if time == p.time {
		return
	}
	p.model.Rollback(p, time)
	if p.time != time {
		panic("payoff.Rollback: model did not reach the target time")
	}
	p.check("payoff.Rollback")
}

// RolledBack returns the conditional expectation of p at event time time
// and leaves p unchanged.
func (p *Payoff) RolledBack(time int) *Payoff {
	r := p.Clone()
	r.Rollback(time)
	return r
}

// ---- interpolation ----

// Interpolate returns p as a function of all states of its model.
func (p *Payoff) Interpolate() function.Multi {
	return p.model.Interpolate(p)
}

// InterpolateOn returns p as a function of the given states, with the other
// states fixed at the origin of the model.
func (p *Payoff) InterpolateOn(states []int) function.Multi {
	return function.Section(p.Interpolate(), p.model.Origin(), states)
}

// AtOrigin evaluates p at the origin of its model.
func (p *Payoff) AtOrigin() (float64, error) {
	v, err := function.EvalMulti(p.Interpolate(), p.model.Origin())
	if err != nil {
		return 0, fmt.Errorf("payoff.AtOrigin: %w", err)
	}
	return v, nil
}
