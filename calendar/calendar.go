// Package calendar adjusts fixing and expiry dates to business days.
package calendar

import "time"

// Convention is a business day convention.
type Convention string

const (
	Unadjusted        Convention = "UNADJUSTED"
	Following         Convention = "FOLLOWING"
	ModifiedFollowing Convention = "MODIFIED_FOLLOWING"
	Preceding         Convention = "PRECEDING"
)

// Calendar is a weekend calendar with an optional holiday set.
type Calendar struct {
	holidays map[string]struct{}
}

// New builds a calendar from holiday dates.
func New(holidays ...time.Time) Calendar {
	c := Calendar{holidays: make(map[string]struct{}, len(holidays))}
	for _, h := range holidays {
		c.holidays[h.Format("2006-01-02")] = struct{}{}
	}
	return c
}

func (c Calendar) isHoliday(t time.Time) bool {
	_, ok := c.holidays[t.Format("2006-01-02")]
	return ok
}

// IsBusinessDay checks weekends and the holiday set.
func (c Calendar) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !c.isHoliday(t)
}

// Adjust rolls t according to the convention. Unknown conventions leave
// the date unchanged.
func (c Calendar) Adjust(conv Convention, t time.Time) time.Time {
	switch conv {
	case Following:
		return c.roll(t, 1)
	case Preceding:
		return c.roll(t, -1)
	case ModifiedFollowing:
		adj := c.roll(t, 1)
		if adj.Month() != t.Month() {
			return c.roll(t, -1)
		}
		return adj
	default:
		return t
	}
}

func (c Calendar) roll(t time.Time, step int) time.Time {
	for !c.IsBusinessDay(t) {
		t = t.AddDate(0, 0, step)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func (c Calendar) AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if c.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}
