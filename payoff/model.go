// Package payoff implements random variables sampled on the lattice of a
// model, with arithmetic, indicators and backward induction.
package payoff

import "github.com/meenmo/lattice/function"

// Model is the capability a lattice model offers to payoffs.
//
// A model has NumberOfStates() state processes observed at EventTimes().
// A payoff at event time t depending on the sorted state indexes deps has
// NumberOfNodes(t, deps) values. For several dependencies the first one
// varies fastest.
type Model interface {
	EventTimes() []float64
	NumberOfStates() int
	NumberOfNodes(time int, deps []int) int
	// Origin is the initial value of the states.
	Origin() []float64
	// State returns the state process index at event time time.
	State(time, index int) *Payoff
	// AddDependence broadcasts p so that it depends on the union of its
	// dependencies and deps.
	AddDependence(p *Payoff, deps []int)
	// Rollback replaces p by its conditional expectation at the earlier
	// event time time.
	Rollback(p *Payoff, time int)
	// Indicator replaces p by the indicator of {p > barrier}.
	Indicator(p *Payoff, barrier float64)
	// Interpolate returns p as a function of all NumberOfStates() states.
	Interpolate(p *Payoff) function.Multi
}
