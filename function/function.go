// Package function provides real functions of one and several variables
// that carry their domain of definition.
package function

import (
	"fmt"

	"github.com/meenmo/lattice/numerr"
)

// Function is a real function of one variable.
type Function interface {
	// Belongs reports whether x is in the domain.
	Belongs(x float64) bool
	// Value evaluates the function. The result is unspecified outside
	// the domain; use Eval for a checked evaluation.
	Value(x float64) float64
}

// Multi is a real function of Dim() variables.
type Multi interface {
	Dim() int
	Belongs(x []float64) bool
	Value(x []float64) float64
}

// Eval evaluates f at x and reports a range error outside the domain.
func Eval(f Function, x float64) (float64, error) {
	if !f.Belongs(x) {
		return 0, numerr.Range(fmt.Sprintf("function argument %v", x))
	}
	return f.Value(x), nil
}

// EvalMulti evaluates f at x with dimension and domain checks.
func EvalMulti(f Multi, x []float64) (float64, error) {
	if len(x) != f.Dim() {
		return 0, numerr.Size(fmt.Sprintf("argument of dimension %d for function of dimension %d", len(x), f.Dim()))
	}
	if !f.Belongs(x) {
		return 0, numerr.Range(fmt.Sprintf("function argument %v", x))
	}
	return f.Value(x), nil
}

type interval struct {
	left, right float64
	fn          func(float64) float64
}

func (f interval) Belongs(x float64) bool  { return f.left <= x && x <= f.right }
func (f interval) Value(x float64) float64 { return f.fn(x) }

// New wraps fn as a function on [left, right].
func New(left, right float64, fn func(float64) float64) Function {
	if left > right {
		panic("function.New: left end above right end")
	}
	return interval{left: left, right: right, fn: fn}
}

// Constant returns the function equal to v on [left, right].
func Constant(v, left, right float64) Function {
	return New(left, right, func(float64) float64 { return v })
}
