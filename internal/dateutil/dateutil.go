// Package dateutil provides the pure calendar arithmetic behind the week
// grid, the booking date picker, and relative-time labels. All functions
// are total: malformed input yields an error or a zero value, never a panic.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a "HH:MM" 24h string.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return Clock{}, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("clock %q out of range", s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String renders the clock back to "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return CompareDay(a, b) == 0
}

// CompareDay orders two timestamps by their calendar-day fields, ignoring
// the time of day and the location: -1 when a's day falls before b's, 0 on
// the same day, +1 after. Instant comparisons are wrong for date windows
// because midnight in one zone is a different instant in another.
func CompareDay(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ak := ay*10000 + int(am)*100 + ad
	bk := by*10000 + int(bm)*100 + bd
	switch {
	case ak < bk:
		return -1
	case ak > bk:
		return 1
	default:
		return 0
	}
}

// WeekStart returns the Monday of the week containing t, at midnight.
// Sunday belongs to the week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	d := Midnight(t)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	return d.AddDate(0, 0, -(wd - 1))
}

// ISOWeek returns the ISO-8601 year and week number for t. Weeks start on
// Monday and week 1 is the week containing the year's first Thursday, so
// dates near a year boundary can belong to the other year's week.
func ISOWeek(t time.Time) (year, week int) {
	return t.ISOWeek()
}

// MonthGrid lays out the days of a month in Monday-indexed weekday columns
// (Monday = column 0). Leading cells before the first of the month are zero
// time values; callers detect them with IsZero.
func MonthGrid(year int, month time.Month, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lead := int(first.Weekday())
	if lead == 0 {
		lead = 7
	}
	lead--
	days := first.AddDate(0, 1, -1).Day()

	cells := make([]time.Time, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, time.Time{})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, time.Date(year, month, d, 0, 0, 0, 0, loc))
	}
	return cells
}

// DisplayDate renders a date the way the journal list shows it (DD-MM-YYYY).
func DisplayDate(t time.Time) string {
	return t.Format("02-01-2006")
}

// relative-time unit thresholds, coarsest first.
const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
)

// RelativeLabel produces a relative-time phrase for target as seen from now,
// choosing the coarsest unit whose magnitude stays under the next threshold:
// minutes under an hour, hours under a day, days under a week, weeks under
// five weeks, months under twelve, years beyond. Rounds to the nearest unit.
func RelativeLabel(target, now time.Time) string {
	d := target.Sub(now)
	future := d > 0
	if d < 0 {
		d = -d
	}

	var n int
	var unit string
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		n, unit = nearest(d, time.Minute), "minute"
	case d < day:
		n, unit = nearest(d, time.Hour), "hour"
	case d < week:
		n, unit = nearest(d, day), "day"
	case d < 5*week:
		n, unit = nearest(d, week), "week"
	case d < 12*month:
		n, unit = nearest(d, month), "month"
	default:
		n, unit = nearest(d, 365*day), "year"
	}

	if n != 1 {
		unit += "s"
	}
	if future {
		return fmt.Sprintf("in %d %s", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

func nearest(d, unit time.Duration) int {
	return int((d + unit/2) / unit)
}
