package gauss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	size = 201
	h    = 0.01
)

func schemes() map[string]Scheme {
	return map[string]Scheme{
		"binomial":       Binomial(),
		"uniform":        Uniform(),
		"implicit":       Implicit(),
		"crank-nicolson": CrankNicolson(),
		"improved":       Improved(),
		"theta":          Theta(0.3, func(h float64) float64 { return 4 * h * h }),
	}
}

func grid(f func(float64) float64) []float64 {
	v := make([]float64, size)
	for i := range v {
		v[i] = f(h * float64(i-(size-1)/2))
	}
	return v
}

func TestAffineInvariance(t *testing.T) {
	t.Parallel()

	for name, s := range schemes() {
		for _, variance := range []float64{1e-7, 0.0003, 0.01, 0.05} {
			v := grid(func(x float64) float64 { return 3 - 2*x })
			want := append([]float64(nil), v...)
			s.Prepare(size, h, variance).Apply(v)
			for i := range v {
				if math.Abs(v[i]-want[i]) > 1e-11 {
					t.Fatalf("%s var=%v: v[%d] = %v, want %v", name, variance, i, v[i], want[i])
				}
			}
		}
	}
}

func TestBoundaryPinned(t *testing.T) {
	t.Parallel()

	for name, s := range schemes() {
		v := grid(func(x float64) float64 { return x * x * x })
		first, last := v[0], v[size-1]
		s.Prepare(size, h, 0.02).Apply(v)
		assert.Equal(t, first, v[0], name)
		assert.Equal(t, last, v[size-1], name)
	}
}

func TestQuadraticMoment(t *testing.T) {
	t.Parallel()

	const variance = 0.01
	for name, s := range schemes() {
		v := grid(func(x float64) float64 { return x * x })
		s.Prepare(size, h, variance).Apply(v)
		mid := (size - 1) / 2
		if math.Abs(v[mid]-variance) > 1e-8 {
			t.Fatalf("%s: E[Z^2] = %v, want %v", name, v[mid], variance)
		}
	}
}

func TestExponentialMoment(t *testing.T) {
	t.Parallel()

	const variance = 0.01
	for name, s := range schemes() {
		v := grid(math.Exp)
		s.Prepare(size, h, variance).Apply(v)
		for _, i := range []int{80, 100, 120} {
			x := h * float64(i-(size-1)/2)
			want := math.Exp(x + variance/2)
			if math.Abs(v[i]/want-1) > 1e-4 {
				t.Fatalf("%s: node %d = %v, want %v", name, i, v[i], want)
			}
		}
	}
}

func TestMonotoneSchemesStayInRange(t *testing.T) {
	t.Parallel()

	monotone := map[string]Scheme{
		"binomial": Binomial(),
		"uniform":  Uniform(),
		"implicit": Implicit(),
	}
	for name, s := range monotone {
		v := grid(func(x float64) float64 {
			switch {
			case x > 0:
				return 1
			case x < 0:
				return 0
			}
			return 0.5
		})
		s.Prepare(size, h, 0.004).Apply(v)
		for i := range v {
			if v[i] < -1e-14 || v[i] > 1+1e-14 {
				t.Fatalf("%s: v[%d] = %v outside [0,1]", name, i, v[i])
			}
		}
		assert.InDelta(t, 0.5, v[(size-1)/2], 1e-12, name)
	}
}

func TestExplicitWeights(t *testing.T) {
	t.Parallel()

	op := Uniform().Prepare(size, h, 1e-4).(explicitOp)
	assert.LessOrEqual(t, op.b, 1.0/3+1e-15)
	op = Binomial().Prepare(size, h, 1e-4).(explicitOp)
	assert.LessOrEqual(t, op.b, 0.5+1e-15)
	// A variance below one step still runs one step.
	op = Binomial().Prepare(size, h, 1e-9).(explicitOp)
	assert.Equal(t, 1, op.steps)
}

func TestImprovedDegeneratesToUniform(t *testing.T) {
	t.Parallel()

	s := NewImproved(CrankNicolson(), 30, 10)
	_, ok := s.Prepare(size, h, 0.001).(explicitOp)
	assert.True(t, ok)
	_, ok = s.Prepare(size, h, 0.01).(chain)
	assert.True(t, ok)
}

func TestTinyGrid(t *testing.T) {
	t.Parallel()

	v := []float64{1, 2}
	for _, s := range schemes() {
		s.Prepare(len(v), h, 1).Apply(v)
	}
	assert.Equal(t, []float64{1, 2}, v)
}
