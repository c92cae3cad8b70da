package extend

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/lattice/approx"
	"github.com/meenmo/lattice/numerr"
	"github.com/meenmo/lattice/payoff"
	"github.com/meenmo/lattice/utils"
)

// Model is a lattice model with one more state than the model beneath it.
// The new state has index below.NumberOfStates(). A Model is immutable.
type Model struct {
	spec    Spec
	below   payoff.Model
	index   int
	schemes []approx.Scheme
	workers int
}

// New adds the state spec on top of below. The initial range of the state
// and each range it can reach after a reset are carried by scheme, bound
// to the range actually observed by evaluating the reset rule on the nodes
// of the previous range.
func New(spec Spec, below payoff.Model, scheme approx.Scheme, opts ...Option) (*Model, error) {
	if spec.Reset == nil {
		panic("extend.New: nil reset rule")
	}
	if !utils.IsSet(spec.Times) {
		return nil, numerr.Sort("extend.New: reset times")
	}
	if n := len(spec.Times); n > 0 && (spec.Times[0] < 0 || spec.Times[n-1] >= len(below.EventTimes())) {
		return nil, numerr.Range(fmt.Sprintf("extend.New: reset times %v for %d event times", spec.Times, len(below.EventTimes())))
	}
	if spec.Interval < 0 {
		return nil, numerr.Range(fmt.Sprintf("extend.New: negative interval %v", spec.Interval))
	}

	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	m := &Model{
		spec:    Spec{Reset: spec.Reset, Times: append([]int(nil), spec.Times...), Origin: spec.Origin, Interval: spec.Interval},
		below:   below,
		index:   below.NumberOfStates(),
		schemes: make([]approx.Scheme, 0, len(spec.Times)+1),
		workers: o.workers,
	}

	m.schemes = append(m.schemes, scheme.Bind(spec.Origin-spec.Interval/2, spec.Origin+spec.Interval/2))
	for _, t := range m.spec.Times {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, x := range m.schemes[len(m.schemes)-1].Nodes() {
			v := m.reset(t, x).Values()
			lo = math.Min(lo, floats.Min(v))
			hi = math.Max(hi, floats.Max(v))
		}
		if !(lo <= hi) {
			return nil, numerr.Range(fmt.Sprintf("extend.New: reset values at event time %d", t))
		}
		s := scheme.Bind(lo, hi)
		m.schemes = append(m.schemes, s)
		o.logger.Debug("path-dependent reset",
			"state", m.index,
			"event_time", t,
			"low", lo,
			"high", hi,
			"nodes", len(s.Nodes()),
		)
	}
	return m, nil
}

// reset evaluates the reset rule and hands the result to the model below.
func (m *Model) reset(time int, before float64) *payoff.Payoff {
	p := m.spec.Reset(time, before)
	if p == nil {
		panic("extend: reset rule returned nil")
	}
	if p.Time() != time {
		panic(fmt.Sprintf("extend: reset rule returned a payoff at event time %d, want %d", p.Time(), time))
	}
	r := p.Clone()
	r.Bind(m.below)
	return r
}

// Scheme returns the approximation scheme carrying the state at event time
// time, before a reset at that time.
func (m *Model) Scheme(time int) approx.Scheme {
	return m.schemes[utils.LowerBoundInt(m.spec.Times, time)]
}

// Index returns the index of the added state.
func (m *Model) Index() int { return m.index }

// Below returns the model beneath m.
func (m *Model) Below() payoff.Model { return m.below }

func (m *Model) isReset(time int) bool {
	return utils.Contains(m.spec.Times, time)
}

func (m *Model) hasExtra(p *payoff.Payoff) bool {
	deps := p.Deps()
	return len(deps) > 0 && deps[len(deps)-1] == m.index
}

func (m *Model) withExtra(deps []int) []int {
	return utils.Union(deps, []int{m.index})
}

func (m *Model) EventTimes() []float64 { return m.below.EventTimes() }

func (m *Model) NumberOfStates() int { return m.index + 1 }

func (m *Model) Origin() []float64 {
	return append(append([]float64(nil), m.below.Origin()...), m.spec.Origin)
}

func (m *Model) NumberOfNodes(time int, deps []int) int {
	base := utils.Below(deps, m.index)
	n := m.below.NumberOfNodes(time, base)
	if len(base) < len(deps) {
		n *= len(m.Scheme(time).Nodes())
	}
	return n
}

// parallel runs fn(0), ..., fn(n-1), concurrently when workers allow.
// Calls must write disjoint data. A panic in one call is raised again on
// the calling goroutine once the running calls are done.
func (m *Model) parallel(n int, fn func(i int)) {
	if m.workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(m.workers)
	for i := 0; i < n; i++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = workerPanic{value: r}
				}
			}()
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err.(workerPanic).value)
	}
}

// workerPanic carries a recovered panic value through errgroup.
type workerPanic struct{ value any }

func (p workerPanic) Error() string { return fmt.Sprint("extend: worker panic: ", p.value) }
