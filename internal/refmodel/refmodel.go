// Package refmodel is a Black-Scholes diffusion on the Brownian lattice,
// used by the command line tool and by tests as a model with closed forms.
package refmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/lattice/brownian"
	"github.com/meenmo/lattice/function"
	"github.com/meenmo/lattice/numerr"
	"github.com/meenmo/lattice/payoff"
)

// Lognormal is the diffusion S(t) = Spot exp((Rate-Dividend)τ + Vol W(τ) - Vol²τ/2)
// with τ = t - Start and a flat discount rate.
type Lognormal struct {
	Spot     float64
	Vol      float64
	Rate     float64
	Dividend float64
	Start    float64

	// Grid configures the lattice.
	Grid []brownian.Option
}

func (l Lognormal) InitialTime() float64 { return l.Start }

// Build returns the discounting Brownian lattice of l over eventTimes.
func (l Lognormal) Build(eventTimes []float64) (payoff.Model, error) {
	if !(l.Spot > 0) || !(l.Vol > 0) {
		return nil, numerr.Range(fmt.Sprintf("refmodel.Build: spot %v, vol %v", l.Spot, l.Vol))
	}
	vars := make([]float64, len(eventTimes))
	for i := range vars {
		vars[i] = l.Vol * l.Vol
	}
	g, err := brownian.New(vars, eventTimes, 0, l.Grid...)
	if err != nil {
		return nil, err
	}
	return &discounted{grid: g, rate: l.Rate}, nil
}

// SpotAt returns the underlying at event time time of m, a model built by l.
func (l Lognormal) SpotAt(m payoff.Model, time int) *payoff.Payoff {
	tau := m.EventTimes()[time] - l.Start
	drift := (l.Rate-l.Dividend)*tau - 0.5*l.Vol*l.Vol*tau
	return m.State(time, 0).Apply(func(x float64) float64 {
		return l.Spot * math.Exp(drift+x)
	})
}

// Discount returns the price at event time from of one unit paid at event
// time to.
func (l Lognormal) Discount(m payoff.Model, from, to int) *payoff.Payoff {
	ts := m.EventTimes()
	return payoff.Constant(m, from, math.Exp(-l.Rate*(ts[to]-ts[from])))
}

// Call returns the Black-Scholes price of a call expiring after t years.
func (l Lognormal) Call(strike, t float64) float64 {
	return BlackScholes(l.Spot, strike, l.Vol, l.Rate, l.Dividend, t, true)
}

// Put returns the Black-Scholes price of a put expiring after t years.
func (l Lognormal) Put(strike, t float64) float64 {
	return BlackScholes(l.Spot, strike, l.Vol, l.Rate, l.Dividend, t, false)
}

// BlackScholes prices a European option.
func BlackScholes(spot, strike, vol, rate, dividend, t float64, call bool) float64 {
	df, fwd := math.Exp(-rate*t), spot*math.Exp((rate-dividend)*t)
	if t <= 0 || vol <= 0 {
		if call {
			return df * math.Max(fwd-strike, 0)
		}
		return df * math.Max(strike-fwd, 0)
	}
	sd := vol * math.Sqrt(t)
	d1 := (math.Log(fwd/strike) + 0.5*sd*sd) / sd
	d2 := d1 - sd
	n := distuv.UnitNormal
	if call {
		return df * (fwd*n.CDF(d1) - strike*n.CDF(d2))
	}
	return df * (strike*n.CDF(-d2) - fwd*n.CDF(-d1))
}

// discounted is the Brownian lattice with rollback discounted at a flat rate.
type discounted struct {
	grid *brownian.Grid
	rate float64
}

func (d *discounted) EventTimes() []float64 { return d.grid.EventTimes() }
func (d *discounted) NumberOfStates() int   { return 1 }
func (d *discounted) Origin() []float64     { return d.grid.Origin() }

func (d *discounted) NumberOfNodes(time int, deps []int) int {
	return d.grid.NumberOfNodes(time, deps)
}

func (d *discounted) State(time, index int) *payoff.Payoff {
	s := d.grid.State(time, index)
	s.Bind(d)
	return s
}

func (d *discounted) AddDependence(p *payoff.Payoff, deps []int) {
	p.Bind(d.grid)
	d.grid.AddDependence(p, deps)
	p.Bind(d)
}

func (d *discounted) Rollback(p *payoff.Payoff, time int) {
	from := p.Time()
	p.Bind(d.grid)
	d.grid.Rollback(p, time)
	p.Bind(d)
	if d.rate != 0 {
		ts := d.grid.EventTimes()
		df := math.Exp(-d.rate * (ts[from] - ts[time]))
		v := p.Values()
		for i := range v {
			v[i] *= df
		}
	}
}

func (d *discounted) Indicator(p *payoff.Payoff, barrier float64) {
	p.Bind(d.grid)
	d.grid.Indicator(p, barrier)
	p.Bind(d)
}

func (d *discounted) Interpolate(p *payoff.Payoff) function.Multi {
	return d.grid.Interpolate(payoff.New(d.grid, p.Time(), p.Deps(), p.Values()))
}
