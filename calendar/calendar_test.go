package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdjust(t *testing.T) {
	t.Parallel()

	// 2025-05-31 is a Saturday, 2025-06-02 a Monday.
	cal := New(date(2025, 6, 2))
	cases := []struct {
		conv Convention
		in   time.Time
		want time.Time
	}{
		{Unadjusted, date(2025, 5, 31), date(2025, 5, 31)},
		{Following, date(2025, 5, 31), date(2025, 6, 3)},
		{ModifiedFollowing, date(2025, 5, 31), date(2025, 5, 30)},
		{Preceding, date(2025, 6, 2), date(2025, 5, 30)},
		{ModifiedFollowing, date(2025, 5, 28), date(2025, 5, 28)},
	}
	for _, tc := range cases {
		got := cal.Adjust(tc.conv, tc.in)
		if !got.Equal(tc.want) {
			t.Fatalf("Adjust(%s, %s) = %s, want %s", tc.conv, tc.in.Format("2006-01-02"),
				got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
		}
	}
}

func TestAddBusinessDays(t *testing.T) {
	t.Parallel()

	cal := New()
	// Friday + 1 business day is Monday.
	assert.Equal(t, date(2025, 6, 2), cal.AddBusinessDays(date(2025, 5, 30), 1))
	assert.Equal(t, date(2025, 5, 30), cal.AddBusinessDays(date(2025, 6, 2), -1))
	assert.False(t, cal.IsBusinessDay(date(2025, 5, 31)))
}
