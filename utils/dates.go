package utils

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the date format accepted by ParseDate.
const DateLayout = "2006-01-02"

// ParseDate converts YYYY-MM-DD to time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Timeline sorts dates, merges equal dates and maps them to year fractions
// from start under the given day count convention. pos[i] is the index in
// times of dates[i]. Every date must be after start.
func Timeline(start time.Time, dates []time.Time, convention string) (times []float64, pos []int, err error) {
	order := make([]int, len(dates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return dates[order[a]].Before(dates[order[b]]) })

	pos = make([]int, len(dates))
	var prev time.Time
	for k, i := range order {
		d := dates[i]
		if !d.After(start) {
			return nil, nil, fmt.Errorf("Timeline: date %s is not after %s", d.Format(DateLayout), start.Format(DateLayout))
		}
		if k == 0 || d.After(prev) {
			times = append(times, YearFraction(start, d, convention))
			prev = d
		}
		pos[i] = len(times) - 1
	}
	return times, pos, nil
}
