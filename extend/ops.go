package extend

import (
	"fmt"

	"github.com/meenmo/lattice/approx"
	"github.com/meenmo/lattice/function"
	"github.com/meenmo/lattice/payoff"
	"github.com/meenmo/lattice/utils"
)

// block returns the j-th slice of size n of values as a payoff of the model
// below. The slice is copied.
func (m *Model) block(time int, deps []int, values []float64, j, n int) *payoff.Payoff {
	return payoff.New(m.below, time, deps, append([]float64(nil), values[j*n:(j+1)*n]...))
}

func (m *Model) State(time, index int) *payoff.Payoff {
	switch {
	case index < m.index:
		s := m.below.State(time, index)
		s.Bind(m)
		return s
	case index > m.index:
		panic(fmt.Sprintf("extend.State: state %d of a model with %d states", index, m.NumberOfStates()))
	}

	nodes := m.Scheme(time).Nodes()
	if !m.isReset(time) {
		return payoff.New(m, time, []int{m.index}, append([]float64(nil), nodes...))
	}

	// After a reset the state is a function of the base states and of its
	// value before the reset.
	slices := make([]*payoff.Payoff, len(nodes))
	var deps []int
	for j, x := range nodes {
		slices[j] = m.reset(time, x)
		deps = utils.Union(deps, slices[j].Deps())
	}
	s0 := m.below.NumberOfNodes(time, deps)
	values := make([]float64, s0*len(nodes))
	for j, s := range slices {
		m.below.AddDependence(s, deps)
		copy(values[j*s0:(j+1)*s0], s.Values())
	}
	return payoff.New(m, time, m.withExtra(deps), values)
}

func (m *Model) AddDependence(p *payoff.Payoff, deps []int) {
	if utils.Includes(p.Deps(), deps) {
		return
	}
	target := utils.Union(p.Deps(), deps)
	if !utils.Contains(target, m.index) {
		p.Bind(m.below)
		m.below.AddDependence(p, target)
		p.Bind(m)
		return
	}

	time := p.Time()
	base := utils.Below(target, m.index)
	s0 := m.below.NumberOfNodes(time, base)
	n := len(m.Scheme(time).Nodes())
	values := make([]float64, s0*n)

	if m.hasExtra(p) {
		pb := utils.Below(p.Deps(), m.index)
		s := m.below.NumberOfNodes(time, pb)
		for j := 0; j < n; j++ {
			b := m.block(time, pb, p.Values(), j, s)
			m.below.AddDependence(b, base)
			copy(values[j*s0:(j+1)*s0], b.Values())
		}
	} else {
		b := payoff.New(m.below, time, p.Deps(), append([]float64(nil), p.Values()...))
		m.below.AddDependence(b, base)
		for j := 0; j < n; j++ {
			copy(values[j*s0:(j+1)*s0], b.Values())
		}
	}
	p.Assign(time, target, values)
}

func (m *Model) Rollback(p *payoff.Payoff, time int) {
	if p.Time() == time {
		return
	}
	if !m.hasExtra(p) {
		p.Bind(m.below)
		m.below.Rollback(p, time)
		p.Bind(m)
		return
	}

	// Step through the resets in (time, p.Time()), latest first. A payoff
	// sitting on a reset time is already expressed in the value before
	// that reset.
	next := utils.LowerBoundInt(m.spec.Times, p.Time())
	stop := utils.LowerBoundInt(m.spec.Times, time)
	for next > 0 && next > stop {
		next--
		m.step(p, m.spec.Times[next])
	}
	m.step(p, time)
}

// step rolls p back to time with no reset strictly between the two times.
func (m *Model) step(p *payoff.Payoff, time int) {
	cur := p.Time()
	if cur == time {
		return
	}

	pb := utils.Below(p.Deps(), m.index)
	s0 := m.below.NumberOfNodes(cur, pb)
	n1 := len(m.Scheme(cur).Nodes())

	// Roll back each slice with the value of the new state held fixed.
	rolled := make([]*payoff.Payoff, n1)
	m.parallel(n1, func(j int) {
		b := m.block(cur, pb, p.Values(), j, s0)
		m.below.Rollback(b, time)
		rolled[j] = b
	})
	depsEnd := rolled[0].Deps()
	s2 := len(rolled[0].Values())
	values := make([]float64, s2*n1)
	for j, b := range rolled {
		if !utils.EqualSets(b.Deps(), depsEnd) {
			panic("extend: slices rolled back to different dependencies")
		}
		copy(values[j*s2:(j+1)*s2], b.Values())
	}

	if !m.isReset(time) {
		p.Assign(time, m.withExtra(depsEnd), values)
		return
	}

	// Reset: re-express the payoff in the value before the reset.
	st := m.State(time, m.index)
	m.AddDependence(st, depsEnd)
	stBase := utils.Below(st.Deps(), m.index)
	if len(stBase) > len(depsEnd) {
		wide := m.below.NumberOfNodes(time, stBase)
		widened := make([]float64, wide*n1)
		for j := 0; j < n1; j++ {
			b := m.block(time, depsEnd, values, j, s2)
			m.below.AddDependence(b, stBase)
			copy(widened[j*wide:(j+1)*wide], b.Values())
		}
		values, s2 = widened, wide
	}

	after := m.Scheme(cur)
	stv := st.Values()
	out := make([]float64, len(stv))
	m.parallel(s2, func(i int) {
		column := make([]float64, n1)
		for j := range column {
			column[j] = values[i+j*s2]
		}
		f := after.Approximate(column)
		for k := i; k < len(stv); k += s2 {
			out[k] = f.Value(stv[k])
		}
	})
	p.Assign(time, st.Deps(), out)
}

func (m *Model) Indicator(p *payoff.Payoff, barrier float64) {
	if !m.hasExtra(p) {
		p.Bind(m.below)
		m.below.Indicator(p, barrier)
		p.Bind(m)
		return
	}
	time := p.Time()
	pb := utils.Below(p.Deps(), m.index)
	s0 := m.below.NumberOfNodes(time, pb)
	values := p.Values()
	for j := 0; j < len(values)/s0; j++ {
		b := m.block(time, pb, values, j, s0)
		m.below.Indicator(b, barrier)
		copy(values[j*s0:(j+1)*s0], b.Values())
	}
}

func (m *Model) Interpolate(p *payoff.Payoff) function.Multi {
	time := p.Time()
	if !m.hasExtra(p) {
		b := payoff.New(m.below, time, p.Deps(), p.Values())
		return function.Extend(m.below.Interpolate(b))
	}

	scheme := m.Scheme(time)
	pb := utils.Below(p.Deps(), m.index)
	if len(pb) == 0 {
		return function.Lift(scheme.Approximate(p.Values()), m.index, m.NumberOfStates())
	}
	s0 := m.below.NumberOfNodes(time, pb)
	n := len(scheme.Nodes())
	funcs := make([]function.Multi, n)
	for j := range funcs {
		funcs[j] = m.below.Interpolate(m.block(time, pb, p.Values(), j, s0))
	}
	return nested{
		scheme: scheme,
		domain: scheme.Approximate(scheme.Nodes()),
		funcs:  funcs,
	}
}

// nested approximates over the last coordinate the functions of the other
// coordinates attached to the scheme nodes.
type nested struct {
	scheme approx.Scheme
	domain function.Function
	funcs  []function.Multi
}

func (f nested) Dim() int { return f.funcs[0].Dim() + 1 }

func (f nested) Belongs(x []float64) bool {
	last := len(x) - 1
	return f.domain.Belongs(x[last]) && f.funcs[0].Belongs(x[:last])
}

func (f nested) Value(x []float64) float64 {
	last := len(x) - 1
	v := make([]float64, len(f.funcs))
	for j, g := range f.funcs {
		v[j] = g.Value(x[:last])
	}
	return f.scheme.Approximate(v).Value(x[last])
}
