// Package extend adds path-dependent state processes to a lattice model.
//
// An added state keeps its value between reset times and jumps at each
// reset time to a payoff computed from its value just before the reset.
// Between resets the state is carried on the nodes of an approximation
// scheme bound to the range the state can reach; at a reset the dependence
// on the old value is re-approximated, so the number of nodes of a payoff
// stays bounded by the base lattice size times the scheme size, whatever the
// number of resets.
package extend

import "github.com/meenmo/lattice/payoff"

// Spec defines a path-dependent state.
type Spec struct {
	// Reset returns the value of the state right after the reset at event
	// time time, given its value before the reset. The returned payoff
	// must live at event time time and depend only on existing states.
	Reset func(time int, before float64) *payoff.Payoff

	// Times are the event time indexes of the resets, strictly increasing.
	Times []int

	// Origin is the initial value of the state and Interval the width of
	// its initial range.
	Origin   float64
	Interval float64
}
