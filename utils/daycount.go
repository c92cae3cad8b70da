package utils

import (
	"time"
)

// Day count conventions accepted by YearFraction.
const (
	Act360    = "ACT/360"
	Act365F   = "ACT/365F"
	Act36525  = "ACT/365.25"
	Thirty360 = "30/360"
	ThirtyE   = "30E/360"
)

// IsDayCount reports whether convention is one YearFraction knows.
func IsDayCount(convention string) bool {
	switch convention {
	case Act360, Act365F, Act36525, Thirty360, ThirtyE:
		return true
	}
	return false
}

// YearFraction computes the year fraction between two dates. Unknown
// conventions fall back to ACT/365F.
func YearFraction(start, end time.Time, convention string) float64 {
	switch convention {
	case Act36525:
		return Days(start, end) / 365.25
	case Act360:
		return Days(start, end) / 360
	case Thirty360, ThirtyE:
		return thirty360(start, end) / 360
	default:
		return Days(start, end) / 365
	}
}

// thirty360 counts days with both day-of-month values capped at 30
// (Eurobond basis).
func thirty360(start, end time.Time) float64 {
	d1, d2 := min(start.Day(), 30), min(end.Day(), 30)
	months := 12*(end.Year()-start.Year()) + int(end.Month()) - int(start.Month())
	return float64(30*months + d2 - d1)
}

// Days returns the number of calendar days between two dates.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}
