package pricing_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/lattice/approx"
	"github.com/meenmo/lattice/brownian"
	"github.com/meenmo/lattice/extend"
	"github.com/meenmo/lattice/internal/refmodel"
	"github.com/meenmo/lattice/interp"
	"github.com/meenmo/lattice/numerr"
	"github.com/meenmo/lattice/payoff"
	"github.com/meenmo/lattice/pricing"
)

var times = []float64{0, 0.25, 0.5, 0.75, 1}

func lognormal(quality float64) refmodel.Lognormal {
	return refmodel.Lognormal{
		Spot:     100,
		Vol:      0.2,
		Rate:     0.03,
		Dividend: 0.01,
		Grid:     []brownian.Option{brownian.WithQuality(quality)},
	}
}

func spline(quality float64) approx.Scheme {
	return approx.FromInterp(approx.Size(quality), interp.Spline{})
}

// average adds the running average of the spot over resets to m.
func average(t *testing.T, l refmodel.Lognormal, m *pricing.Model, resets []int) int {
	t.Helper()
	idx, err := m.AddState(extend.Spec{
		Reset: func(time int, before float64) *payoff.Payoff {
			k := float64(1)
			for _, r := range resets {
				if r < time {
					k++
				}
			}
			return l.SpotAt(m, time).MulC(1 / k).AddC(before * (k - 1) / k)
		},
		Times: resets,
	})
	require.NoError(t, err)
	return idx
}

func price(t *testing.T, p *payoff.Payoff) float64 {
	t.Helper()
	p.Rollback(0)
	v, err := p.AtOrigin()
	require.NoError(t, err)
	return v
}

func TestEuropeanOptions(t *testing.T) {
	t.Parallel()

	l := lognormal(200)
	m, err := pricing.New(l, times)
	require.NoError(t, err)
	assert.Equal(t, times, m.EventTimes())
	assert.Equal(t, 1, m.NumberOfStates())

	s := l.SpotAt(m, 4)
	call := price(t, s.SubC(100).MaxC(0))
	put := price(t, s.RSub(100).MaxC(0))
	assert.InDelta(t, l.Call(100, 1), call, 0.02)
	assert.InDelta(t, l.Put(100, 1), put, 0.02)

	cash := m.Cash(4, 100)
	assert.InDelta(t, l.Discount(m, 0, 4).Values()[0]*100, price(t, cash), 1e-9)
}

func TestAddStateAndReassign(t *testing.T) {
	t.Parallel()

	l := lognormal(40)
	m, err := pricing.New(l, times)
	require.NoError(t, err)

	first := average(t, l, m, []int{1, 2, 3})
	second := average(t, l, m, []int{2, 4})
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 3, m.NumberOfStates())
	assert.Equal(t, []float64{0, 0, 0}, m.Origin())
	require.NotNil(t, m.Extension(2))
	assert.Nil(t, m.Extension(0))
	assert.Nil(t, m.Extension(3))

	require.NoError(t, m.AssignEventTimes([]float64{0, 0.5, 1, 2}))
	assert.Equal(t, 1, m.NumberOfStates())
	assert.Equal(t, []float64{0, 0.5, 1, 2}, m.EventTimes())
	assert.Nil(t, m.Extension(1))
}

func TestTimelineErrors(t *testing.T) {
	t.Parallel()

	l := lognormal(40)
	_, err := pricing.New(l, nil)
	assert.True(t, errors.Is(err, numerr.ErrSize))
	_, err = pricing.New(l, []float64{0, 1, 1})
	assert.True(t, errors.Is(err, numerr.ErrSort))

	m, err := pricing.New(l, times)
	require.NoError(t, err)
	err = m.AssignEventTimes([]float64{0.5, 1})
	assert.True(t, errors.Is(err, numerr.ErrRange))
	assert.Equal(t, times, m.EventTimes(), "failed reassignment keeps the timeline")

	_, err = m.AddState(extend.Spec{
		Reset: func(time int, before float64) *payoff.Payoff { return m.Cash(time, before) },
		Times: []int{3, 1},
	})
	assert.True(t, errors.Is(err, numerr.ErrSort))
	assert.Equal(t, 1, m.NumberOfStates())
}

// copyOf copies the state from at the reset time.
func copyOf(m *pricing.Model, from, reset int) extend.Spec {
	return extend.Spec{
		Reset: func(time int, before float64) *payoff.Payoff { return m.State(time, from) },
		Times: []int{reset},
	}
}

func TestChainedCopyMatchesState(t *testing.T) {
	t.Parallel()

	l := lognormal(50)
	scheme := spline(400)

	single, err := pricing.New(l, times, pricing.WithSchemes(scheme))
	require.NoError(t, err)
	a := average(t, l, single, []int{1, 2, 3})
	want := price(t, single.State(4, a).SubC(100).MaxC(0))

	chained, err := pricing.New(l, times, pricing.WithSchemes(scheme))
	require.NoError(t, err)
	a = average(t, l, chained, []int{1, 2, 3})
	c, err := chained.AddState(copyOf(chained, a, 3))
	require.NoError(t, err)
	got := price(t, chained.State(4, c).SubC(100).MaxC(0))

	assert.InDelta(t, want, got, 1e-9)
	assert.InDelta(t, 5, got, 1.5)
}

func TestSchemesPerState(t *testing.T) {
	t.Parallel()

	l := lognormal(40)
	m, err := pricing.New(l, times, pricing.WithSchemes(spline(100), spline(900)))
	require.NoError(t, err)
	a := average(t, l, m, []int{1, 2})
	b := average(t, l, m, []int{1, 2})
	c := average(t, l, m, []int{1, 2})

	coarse := len(m.Extension(a).Scheme(3).Nodes())
	fine := len(m.Extension(b).Scheme(3).Nodes())
	assert.Less(t, coarse, fine)
	assert.Equal(t, fine, len(m.Extension(c).Scheme(3).Nodes()), "last scheme is reused")
}

func TestWorkers(t *testing.T) {
	t.Parallel()

	run := func(workers int) float64 {
		l := lognormal(50)
		m, err := pricing.New(l, times, pricing.WithWorkers(workers))
		require.NoError(t, err)
		a := average(t, l, m, []int{1, 2, 3})
		return price(t, m.State(4, a).SubC(100).MaxC(0))
	}
	assert.Equal(t, run(1), run(4))
	assert.Panics(t, func() { pricing.WithWorkers(0) })
	assert.Panics(t, func() { pricing.WithSchemes() })
	assert.Panics(t, func() { pricing.WithLogger(nil) })
}

func TestLogsTimeline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m, err := pricing.New(lognormal(30), times, pricing.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"event times assigned"`)

	average(t, lognormal(30), m, []int{2})
	assert.Contains(t, buf.String(), `"msg":"path-dependent reset"`)
}
