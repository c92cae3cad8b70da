package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracket(t *testing.T) {
	t.Parallel()

	xs := []float64{0, 1, 2, 4}
	cases := []struct {
		x    float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0},
		{1, 0},
		{1.5, 1},
		{3.9, 2},
		{4, 2},
		{7, 2},
	}
	for _, tc := range cases {
		if got := Bracket(xs, tc.x); got != tc.want {
			t.Fatalf("Bracket(%v) = %d, want %d", tc.x, got, tc.want)
		}
	}
	assert.Panics(t, func() { Bracket([]float64{1}, 1) })
}

func TestLowerBound(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, LowerBound([]float64{1, 2, 3}, 0.5))
	assert.Equal(t, 1, LowerBound([]float64{1, 2, 3}, 2))
	assert.Equal(t, 3, LowerBound([]float64{1, 2, 3}, 9))
	assert.Equal(t, 2, LowerBoundInt([]int{1, 4, 6}, 5))
	assert.Equal(t, 1, LowerBoundInt([]int{1, 4, 6}, 4))
}

func TestOrderChecks(t *testing.T) {
	t.Parallel()

	assert.True(t, IsIncreasing([]float64{0, 1, 2}))
	assert.False(t, IsIncreasing([]float64{0, 1, 1}))
	assert.True(t, IsNonDecreasing([]float64{0, 1, 1}))
	assert.False(t, IsNonDecreasing([]float64{0, 2, 1}))
	assert.True(t, IsIncreasing(nil))
}

func TestSets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{0, 1, 2, 5}, Union([]int{0, 2}, []int{1, 2, 5}))
	assert.Equal(t, []int{3}, Union(nil, []int{3}))
	assert.True(t, Includes([]int{0, 1, 2}, []int{0, 2}))
	assert.True(t, Includes([]int{0, 1, 2}, nil))
	assert.False(t, Includes([]int{0, 2}, []int{1}))
	assert.False(t, Includes([]int{0}, []int{0, 1}))
	assert.True(t, EqualSets([]int{1, 2}, []int{1, 2}))
	assert.False(t, EqualSets([]int{1, 2}, []int{1}))
	assert.True(t, Contains([]int{0, 3}, 3))
	assert.False(t, Contains([]int{0, 3}, 2))
	assert.Equal(t, []int{0, 1}, Below([]int{0, 1, 2}, 2))
	assert.Empty(t, Below([]int{2}, 2))
	assert.True(t, IsSet([]int{0, 2}))
	assert.False(t, IsSet([]int{2, 2}))
}

func TestTimeline(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	got, pos, err := Timeline(start, dates, "ACT/365F")
	require.NoError(t, err)
	if math.Abs(got[0]-182.0/365) > 1e-12 || math.Abs(got[1]-1) > 1e-12 {
		t.Fatalf("Timeline = %v", got)
	}
	assert.Equal(t, []int{0, 1}, pos)

	got, pos, err = Timeline(start, []time.Time{dates[1], dates[0], dates[1]}, "ACT/365F")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []int{1, 0, 1}, pos)

	_, _, err = Timeline(start, []time.Time{dates[0], start}, "ACT/365F")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2025-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.March, d.Month())

	_, err = ParseDate("31/03/2025")
	assert.Error(t, err)
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		conv string
		want float64
	}{
		{"ACT/360", 181.0 / 360},
		{"ACT/365F", 181.0 / 365},
		{"ACT/365.25", 181.0 / 365.25},
		{"30E/360", 0.5},
		{"", 181.0 / 365},
	}
	for _, tc := range cases {
		if got := YearFraction(start, end, tc.conv); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("YearFraction(%q) = %v, want %v", tc.conv, got, tc.want)
		}
	}
	assert.True(t, IsDayCount(Thirty360))
	assert.False(t, IsDayCount(""))
	assert.False(t, IsDayCount("ACT/ACT"))
}
