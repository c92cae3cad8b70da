// Package brownian builds the lattice of a one-dimensional Brownian motion
// with deterministic time-dependent variance.
package brownian

import (
	"fmt"
	"math"

	"github.com/meenmo/lattice/config"
	"github.com/meenmo/lattice/function"
	"github.com/meenmo/lattice/gauss"
	"github.com/meenmo/lattice/ind"
	"github.com/meenmo/lattice/interp"
	"github.com/meenmo/lattice/numerr"
	"github.com/meenmo/lattice/payoff"
	"github.com/meenmo/lattice/utils"
)

// Grid is the lattice of the state process X with X(t0) = 0 and
// Var X(t_i) = variances[i] * (t_i - t0). At event time t_i the state takes
// Size(i) evenly spaced values centred at 0 with spacing 1/quality, wide
// enough to hold the initial interval plus 3+ln(1+quality) standard
// deviations on each side.
//
// A Grid is immutable and safe for concurrent rollbacks.
type Grid struct {
	times    []float64
	totalVar []float64
	sizes    []int
	h        float64
	eps      float64
	rollback gauss.Scheme
	ind      ind.Scheme
	interp   interp.Scheme
}

// New builds the grid. variances[i] is the average variance rate of X over
// [t0, t_i]; interval is the width of the initial range of X.
func New(variances, eventTimes []float64, interval float64, opts ...Option) (*Grid, error) {
	if len(eventTimes) == 0 || len(variances) != len(eventTimes) {
		return nil, numerr.Size(fmt.Sprintf("brownian.New: %d variances for %d event times", len(variances), len(eventTimes)))
	}
	if interval < 0 {
		return nil, numerr.Range(fmt.Sprintf("brownian.New: negative interval %v", interval))
	}
	if !utils.IsNonDecreasing(eventTimes) {
		return nil, numerr.Sort("brownian.New: event times")
	}

	o := defaults()
	for _, opt := range opts {
		opt(&o)
	}
	quality := math.Max(o.quality, 1)
	eps := config.GetConfig().Eps

	g := &Grid{
		times:    append([]float64(nil), eventTimes...),
		totalVar: make([]float64, len(eventTimes)),
		sizes:    make([]int, len(eventTimes)),
		h:        1 / quality,
		eps:      eps,
		rollback: o.rollback,
		ind:      o.ind,
		interp:   o.interp,
	}
	for i, v := range variances {
		g.totalVar[i] = v * (eventTimes[i] - eventTimes[0])
	}
	if g.totalVar[0] != 0 || !utils.IsNonDecreasing(g.totalVar) {
		return nil, numerr.Sort("brownian.New: accumulated variances")
	}

	interval += eps
	stdevs := 3 + math.Log(1+quality)
	for i, v := range g.totalVar {
		g.sizes[i] = 2*int(math.Ceil((interval/2+stdevs*math.Sqrt(v))/g.h)) + 1 + 2
	}

	o.logger.Debug("brownian grid",
		"event_times", len(eventTimes),
		"quality", quality,
		"spacing", g.h,
		"initial_size", g.sizes[0],
		"final_size", g.sizes[len(g.sizes)-1],
	)
	return g, nil
}

// EventTimes returns the event times. Callers must not modify the slice.
func (g *Grid) EventTimes() []float64 { return g.times }

func (g *Grid) NumberOfStates() int { return 1 }

func (g *Grid) Origin() []float64 { return []float64{0} }

// Size returns the number of nodes at event time time.
func (g *Grid) Size(time int) int { return g.sizes[time] }

// Spacing returns the distance between adjacent nodes.
func (g *Grid) Spacing() float64 { return g.h }

// TotalVariance returns Var X at event time time.
func (g *Grid) TotalVariance(time int) float64 { return g.totalVar[time] }

// Nodes returns the values of the state at event time time.
func (g *Grid) Nodes(time int) []float64 {
	n := g.sizes[time]
	nodes := make([]float64, n)
	for i := range nodes {
		nodes[i] = g.h * float64(i-(n-1)/2)
	}
	return nodes
}

func (g *Grid) NumberOfNodes(time int, deps []int) int {
	if len(deps) == 0 {
		return 1
	}
	return g.sizes[time]
}

func (g *Grid) State(time, index int) *payoff.Payoff {
	if index != 0 {
		panic(fmt.Sprintf("brownian.State: state %d of a one-state grid", index))
	}
	return payoff.New(g, time, []int{0}, g.Nodes(time))
}

func (g *Grid) AddDependence(p *payoff.Payoff, deps []int) {
	if utils.Includes(p.Deps(), deps) {
		return
	}
	target := utils.Union(p.Deps(), deps)
	values := make([]float64, g.sizes[p.Time()])
	for i := range values {
		values[i] = p.Values()[0]
	}
	p.Assign(p.Time(), target, values)
}

func (g *Grid) Rollback(p *payoff.Payoff, time int) {
	cur := p.Time()
	if time == cur {
		return
	}
	if p.IsConstant() {
		p.Assign(time, nil, p.Values())
		return
	}

	variance := g.totalVar[cur] - g.totalVar[time]
	if variance == 0 {
		variance = g.eps
	}
	values := p.Values()
	g.rollback.Prepare(len(values), g.h, variance).Apply(values)

	n := g.sizes[time]
	off := (len(values) - n) / 2
	p.Assign(time, p.Deps(), append([]float64(nil), values[off:off+n]...))
}

func (g *Grid) Indicator(p *payoff.Payoff, barrier float64) {
	g.ind.Indicator(p.Values(), barrier)
}

func (g *Grid) Interpolate(p *payoff.Payoff) function.Multi {
	if p.IsConstant() {
		return function.ConstantMulti(p.Values()[0], 1)
	}
	f, err := g.interp.Interpolate(g.Nodes(p.Time()), p.Values())
	if err != nil {
		panic("brownian.Interpolate: " + err.Error())
	}
	return function.Lift(f, 0, 1)
}
