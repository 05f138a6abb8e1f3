package dateutil

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStartIsMonday(t *testing.T) {
	// Sweep a full year so every weekday and a year boundary are covered.
	d := date(2024, time.December, 1)
	for i := 0; i < 400; i++ {
		ws := WeekStart(d)
		if ws.Weekday() != time.Monday {
			t.Fatalf("WeekStart(%v) = %v, not a Monday", d, ws)
		}
		if ws.After(d) {
			t.Fatalf("WeekStart(%v) = %v is after the input", d, ws)
		}
		if !d.Before(ws.AddDate(0, 0, 7)) {
			t.Fatalf("%v not within 7 days of its week start %v", d, ws)
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestWeekStartKnownDates(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2025, time.November, 11), date(2025, time.November, 10)}, // Tuesday
		{date(2025, time.November, 10), date(2025, time.November, 10)}, // Monday maps to itself
		{date(2025, time.November, 16), date(2025, time.November, 10)}, // Sunday maps back
		{date(2025, time.January, 1), date(2024, time.December, 30)},   // across a year boundary
	}
	for _, tt := range tests {
		if got := WeekStart(tt.in); !got.Equal(tt.want) {
			t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWeekStartKeepsTimeOfDayOut(t *testing.T) {
	in := time.Date(2025, time.November, 11, 17, 45, 12, 0, time.UTC)
	got := WeekStart(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("WeekStart not truncated to midnight: %v", got)
	}
}

func TestISOWeekEdgeCases(t *testing.T) {
	tests := []struct {
		in       time.Time
		wantYear int
		wantWeek int
	}{
		{date(2021, time.January, 1), 2020, 53},
		{date(2023, time.January, 2), 2023, 1},
		{date(2024, time.December, 30), 2025, 1}, // Dec 30/31 roll into next year's week 1
		{date(2025, time.November, 11), 2025, 46},
	}
	for _, tt := range tests {
		y, w := ISOWeek(tt.in)
		if y != tt.wantYear || w != tt.wantWeek {
			t.Errorf("ISOWeek(%v) = %d/%d, want %d/%d", tt.in, y, w, tt.wantYear, tt.wantWeek)
		}
	}
}

func TestMonthGrid(t *testing.T) {
	// November 2025 starts on a Saturday: five leading placeholders.
	cells := MonthGrid(2025, time.November, time.UTC)
	if len(cells) != 5+30 {
		t.Fatalf("cell count = %d, want 35", len(cells))
	}
	for i := 0; i < 5; i++ {
		if !cells[i].IsZero() {
			t.Errorf("cell %d should be a placeholder, got %v", i, cells[i])
		}
	}
	if cells[5].Day() != 1 {
		t.Errorf("first real cell = %v, want the 1st", cells[5])
	}
	if cells[len(cells)-1].Day() != 30 {
		t.Errorf("last cell = %v, want the 30th", cells[len(cells)-1])
	}

	// September 2025 starts on a Monday: no placeholders.
	cells = MonthGrid(2025, time.September, time.UTC)
	if len(cells) != 30 || cells[0].Day() != 1 {
		t.Errorf("september grid: len=%d first=%v", len(cells), cells[0])
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"09:00", Clock{9, 0}, false},
		{"16:45", Clock{16, 45}, false},
		{"00:00", Clock{0, 0}, false},
		{"23:59", Clock{23, 59}, false},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"-1:30", Clock{}, true},
		{"0900", Clock{}, true},
		{"", Clock{}, true},
		{"aa:bb", Clock{}, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	c := Clock{Hour: 9, Minute: 5}
	if c.String() != "09:05" {
		t.Errorf("String() = %q", c.String())
	}
	if c.Minutes() != 545 {
		t.Errorf("Minutes() = %d", c.Minutes())
	}
}

func TestRelativeLabel(t *testing.T) {
	now := time.Date(2025, time.November, 11, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		target time.Time
		want   string
	}{
		{now.Add(30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(59 * time.Minute), "in 59 minutes"},
		{now.Add(-90 * time.Minute), "2 hours ago"}, // rounds to nearest
		{now.Add(23 * time.Hour), "in 23 hours"},
		{now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{now.Add(13 * 24 * time.Hour), "in 2 weeks"},
		{now.Add(-10 * 7 * 24 * time.Hour), "2 months ago"},
		{now.AddDate(2, 0, 0), "in 2 years"},
		{now.Add(-1 * time.Hour), "1 hour ago"}, // singular
	}
	for _, tt := range tests {
		if got := RelativeLabel(tt.target, now); got != tt.want {
			t.Errorf("RelativeLabel(%v) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestCompareDayIgnoresLocation(t *testing.T) {
	east := time.FixedZone("UTC+5", 5*3600)
	utcMidnight := time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC)
	eastMidnight := time.Date(2026, time.February, 11, 0, 0, 0, 0, east)

	// Different instants, same calendar day.
	if utcMidnight.Equal(eastMidnight) {
		t.Fatal("fixture instants should differ")
	}
	if got := CompareDay(utcMidnight, eastMidnight); got != 0 {
		t.Errorf("CompareDay same day across zones = %d, want 0", got)
	}
	if !SameDay(utcMidnight, eastMidnight) {
		t.Error("SameDay should ignore location")
	}

	if got := CompareDay(utcMidnight.AddDate(0, 0, -1), eastMidnight); got != -1 {
		t.Errorf("CompareDay earlier day = %d, want -1", got)
	}
	if got := CompareDay(utcMidnight.AddDate(0, 0, 1), eastMidnight); got != 1 {
		t.Errorf("CompareDay later day = %d, want 1", got)
	}
}

func TestDisplayDate(t *testing.T) {
	if got := DisplayDate(date(2025, time.November, 11)); got != "11-11-2025" {
		t.Errorf("DisplayDate = %q", got)
	}
}
