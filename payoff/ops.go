package payoff

import (
	"fmt"
	"math"

	"github.com/meenmo/lattice/utils"
)

// binary combines p and q elementwise after broadcasting both onto the
// union of their dependencies.
func (p *Payoff) binary(q *Payoff, op func(a, b float64) float64, name string) *Payoff {
	if p.model != q.model {
		panic(fmt.Sprintf("payoff.%s: operands belong to different models", name))
	}
	if p.time != q.time {
		panic(fmt.Sprintf("payoff.%s: operands at event times %d and %d", name, p.time, q.time))
	}
	if q.IsConstant() {
		c := q.values[0]
		return p.Apply(func(a float64) float64 { return op(a, c) })
	}
	if p.IsConstant() {
		c := p.values[0]
		return q.Apply(func(b float64) float64 { return op(c, b) })
	}

	a, b := p, q
	if !utils.EqualSets(a.deps, b.deps) {
		target := utils.Union(a.deps, b.deps)
		a = a.broadcast(target, name)
		b = b.broadcast(target, name)
	}
	values := make([]float64, len(a.values))
	for i := range values {
		values[i] = op(a.values[i], b.values[i])
	}
	return New(a.model, a.time, a.deps, values)
}

func (p *Payoff) broadcast(target []int, name string) *Payoff {
	if utils.EqualSets(p.deps, target) {
		return p
	}
	r := p.Clone()
	r.model.AddDependence(r, target)
	if !utils.EqualSets(r.deps, target) {
		panic(fmt.Sprintf("payoff.%s: broadcast to %v gave %v", name, target, r.deps))
	}
	return r
}

// Apply returns f applied to every value of p.
func (p *Payoff) Apply(f func(float64) float64) *Payoff {
	r := p.Clone()
	for i, v := range r.values {
		r.values[i] = f(v)
	}
	return r
}

func (p *Payoff) Add(q *Payoff) *Payoff {
	return p.binary(q, func(a, b float64) float64 { return a + b }, "Add")
}

func (p *Payoff) Sub(q *Payoff) *Payoff {
	return p.binary(q, func(a, b float64) float64 { return a - b }, "Sub")
}

func (p *Payoff) Mul(q *Payoff) *Payoff {
	return p.binary(q, func(a, b float64) float64 { return a * b }, "Mul")
}

func (p *Payoff) Div(q *Payoff) *Payoff {
	return p.binary(q, func(a, b float64) float64 { return a / b }, "Div")
}

func (p *Payoff) Max(q *Payoff) *Payoff { return p.binary(q, math.Max, "Max") }
func (p *Payoff) Min(q *Payoff) *Payoff { return p.binary(q, math.Min, "Min") }

func (p *Payoff) AddC(c float64) *Payoff {
	return p.Apply(func(a float64) float64 { return a + c })
}

func (p *Payoff) SubC(c float64) *Payoff {
	return p.Apply(func(a float64) float64 { return a - c })
}

// RSub returns c - p.
func (p *Payoff) RSub(c float64) *Payoff {
	return p.Apply(func(a float64) float64 { return c - a })
}

func (p *Payoff) MulC(c float64) *Payoff {
	return p.Apply(func(a float64) float64 { return a * c })
}

func (p *Payoff) DivC(c float64) *Payoff {
	return p.Apply(func(a float64) float64 { return a / c })
}

// RDiv returns c / p.
func (p *Payoff) RDiv(c float64) *Payoff {
	return p.Apply(func(a float64) float64 { return c / a })
}

func (p *Payoff) MaxC(c float64) *Payoff {
	return p.Apply(func(a float64) float64 { return math.Max(a, c) })
}

func (p *Payoff) MinC(c float64) *Payoff {
	return p.Apply(func(a float64) float64 { return math.Min(a, c) })
}

func (p *Payoff) Neg() *Payoff  { return p.Apply(func(a float64) float64 { return -a }) }
func (p *Payoff) Abs() *Payoff  { return p.Apply(math.Abs) }
func (p *Payoff) Exp() *Payoff  { return p.Apply(math.Exp) }
func (p *Payoff) Log() *Payoff  { return p.Apply(math.Log) }
func (p *Payoff) Sqrt() *Payoff { return p.Apply(math.Sqrt) }

func (p *Payoff) Pow(e float64) *Payoff {
	return p.Apply(func(a float64) float64 { return math.Pow(a, e) })
}

// ---- indicators ----

// Indicator returns the indicator of {p > barrier} as smoothed by the model.
func (p *Payoff) Indicator(barrier float64) *Payoff {
	r := p.Clone()
	r.model.Indicator(r, barrier)
	r.check("payoff.Indicator")
	return r
}

// IndicatorBelow returns the indicator of {p <= barrier}.
func (p *Payoff) IndicatorBelow(barrier float64) *Payoff {
	return p.Indicator(barrier).RSub(1)
}

// IndicatorOf returns the indicator of {p > q}.
func (p *Payoff) IndicatorOf(q *Payoff) *Payoff {
	return p.Sub(q).Indicator(0)
}
