package kernel

import (
	"fmt"
	"time"

	"procurement/internal/pkg/errs"
)

// DayLayout is the textual form of a Day ("2006-01-02").
const DayLayout = time.DateOnly

// Day is a calendar date without a time of day. Rollups are keyed by Day and
// the aggregation window of a Day is [Start, Next().Start) in a given location.
type Day struct {
	year  int
	month time.Month
	day   int
}

// NewDay builds a Day from its components, normalizing overflow the way
// time.Date does (e.g. January 32 becomes February 1).
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), time.UTC)
}

// DayOf returns the calendar date of t as observed in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Day{year: y, month: m, day: d}
}

// ParseDay parses "2006-01-02".
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return Day{}, errs.NewValueIsInvalidErrorWithCause("day", fmt.Errorf("%q: %w", s, err))
	}
	return DayOf(t, time.UTC), nil
}

// Start returns midnight of the day in loc.
func (d Day) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	return NewDay(d.year, d.month, d.day+1)
}

// Prev returns the preceding calendar day.
func (d Day) Prev() Day {
	return NewDay(d.year, d.month, d.day-1)
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return d.Compare(other) > 0
}

// Compare returns -1, 0 or +1.
func (d Day) Compare(other Day) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) Year() int         { return d.year }
func (d Day) Month() time.Month { return d.month }
func (d Day) DayOfMonth() int   { return d.day }

func (d Day) String() string {
	return d.Start(time.UTC).Format(DayLayout)
}

// DaysBetween counts calendar days from from to to; negative when to is earlier.
func DaysBetween(from, to Day) int {
	return int(to.Start(time.UTC).Sub(from.Start(time.UTC)).Hours() / 24)
}

// DaysInRange lists every day in [from, to]. It returns nil when from is after to.
func DaysInRange(from, to Day) []Day {
	var days []Day
	for d := from; !d.After(to); d = d.Next() {
		days = append(days, d)
	}
	return days
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
