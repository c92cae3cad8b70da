package function

type constantMulti struct {
	v   float64
	dim int
}

func (f constantMulti) Dim() int                { return f.dim }
func (f constantMulti) Belongs([]float64) bool  { return true }
func (f constantMulti) Value([]float64) float64 { return f.v }

// ConstantMulti returns the constant v as a function of dim variables.
// Its domain is the whole space.
func ConstantMulti(v float64, dim int) Multi {
	return constantMulti{v: v, dim: dim}
}

type lifted struct {
	f     Function
	index int
	dim   int
}

func (f lifted) Dim() int                  { return f.dim }
func (f lifted) Belongs(x []float64) bool  { return f.f.Belongs(x[f.index]) }
func (f lifted) Value(x []float64) float64 { return f.f.Value(x[f.index]) }

// Lift turns f into a function of dim variables that depends only on
// coordinate index.
func Lift(f Function, index, dim int) Multi {
	if index < 0 || index >= dim {
		panic("function.Lift: coordinate outside dimension")
	}
	return lifted{f: f, index: index, dim: dim}
}

type extended struct {
	f Multi
}

func (f extended) Dim() int                  { return f.f.Dim() + 1 }
func (f extended) Belongs(x []float64) bool  { return f.f.Belongs(x[:len(x)-1]) }
func (f extended) Value(x []float64) float64 { return f.f.Value(x[:len(x)-1]) }

// Extend adds a trailing coordinate that f does not depend on.
func Extend(f Multi) Multi {
	return extended{f: f}
}

type section struct {
	f     Multi
	point []float64
	free  []int
}

func (f section) Dim() int { return len(f.free) }

func (f section) at(x []float64) []float64 {
	y := make([]float64, len(f.point))
	copy(y, f.point)
	for i, j := range f.free {
		y[j] = x[i]
	}
	return y
}

func (f section) Belongs(x []float64) bool  { return f.f.Belongs(f.at(x)) }
func (f section) Value(x []float64) float64 { return f.f.Value(f.at(x)) }

// Section restricts f to the coordinates in free. The remaining
// coordinates are fixed at the values of point.
func Section(f Multi, point []float64, free []int) Multi {
	if len(point) != f.Dim() {
		panic("function.Section: point dimension mismatch")
	}
	for _, j := range free {
		if j < 0 || j >= f.Dim() {
			panic("function.Section: free coordinate outside dimension")
		}
	}
	p := make([]float64, len(point))
	copy(p, point)
	return section{f: f, point: p, free: append([]int(nil), free...)}
}
