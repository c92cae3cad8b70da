package gauss

import "github.com/meenmo/lattice/config"

type improved struct {
	fast     Scheme
	warmup   int
	cooldown int
}

// NewImproved chains warmup uniform explicit steps, the fast scheme, and
// cooldown implicit steps of variance h^2. When the warmup and cooldown
// variance already covers the rollback, only the uniform scheme runs.
func NewImproved(fast Scheme, warmup, cooldown int) Scheme {
	if warmup < 1 || cooldown < 1 {
		panic("gauss.NewImproved: warmup and cooldown need at least one step")
	}
	return improved{fast: fast, warmup: warmup, cooldown: cooldown}
}

// Improved is NewImproved over Crank-Nicolson with the step counts of the
// active configuration.
func Improved() Scheme {
	c := config.GetConfig()
	return NewImproved(CrankNicolson(), c.WarmupSteps, c.CooldownSteps)
}

type chain []Operator

func (ops chain) Apply(v []float64) {
	for _, op := range ops {
		op.Apply(v)
	}
}

func (s improved) Prepare(size int, h, variance float64) Operator {
	uniform := Uniform()
	varUniform := float64(s.warmup) * h * h * 2 / 3
	varImplicit := float64(s.cooldown) * h * h
	if varUniform+varImplicit >= variance {
		return uniform.Prepare(size, h, variance)
	}
	cool := Theta(0, func(h float64) float64 { return h * h })
	return chain{
		uniform.Prepare(size, h, varUniform),
		s.fast.Prepare(size, h, variance-varUniform-varImplicit),
		cool.Prepare(size, h, varImplicit),
	}
}
