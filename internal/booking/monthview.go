package booking

import (
	"fmt"
	"time"

	"github.com/ostenfeld/klinika/internal/dateutil"
)

// DayCell is one cell of the date-picker month grid. Placeholder cells pad
// the first week so day 1 lands in its Monday-indexed column.
type DayCell struct {
	Date        time.Time `json:"date,omitzero"`
	Placeholder bool      `json:"placeholder,omitempty"`
	Disabled    bool      `json:"disabled,omitempty"`
}

// MonthView is the date-picker state for one displayed month: its cells with
// selectability flags and whether navigation in either direction is allowed.
type MonthView struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Label   string     `json:"label"`
	Cells   []DayCell  `json:"cells"`
	CanPrev bool       `json:"can_prev"`
	CanNext bool       `json:"can_next"`
}

// Month builds the picker view for the month containing display, clamped to
// the months covered by the booking window. Days outside [today, horizon]
// are disabled; navigation stops at the window's boundary months.
func (p *Planner) Month(display time.Time) MonthView {
	from, to := p.Window()
	display = clampMonth(display, from, to)

	year, month := display.Year(), display.Month()
	grid := dateutil.MonthGrid(year, month, display.Location())
	cells := make([]DayCell, len(grid))
	for i, d := range grid {
		if d.IsZero() {
			cells[i] = DayCell{Placeholder: true}
			continue
		}
		cells[i] = DayCell{Date: d, Disabled: dateutil.CompareDay(d, from) < 0 || dateutil.CompareDay(d, to) > 0}
	}

	return MonthView{
		Year:    year,
		Month:   month,
		Label:   fmt.Sprintf("%s %d", month, year),
		Cells:   cells,
		CanPrev: monthIndex(display) > monthIndex(from),
		CanNext: monthIndex(display) < monthIndex(to),
	}
}

// ShiftMonth moves the displayed month by delta months, refusing to leave
// the booking window: a shift that would land outside returns the boundary
// month unchanged in effect.
func (p *Planner) ShiftMonth(display time.Time, delta int) time.Time {
	from, to := p.Window()
	display = clampMonth(display, from, to)
	shifted := time.Date(display.Year(), display.Month(), 1, 0, 0, 0, 0, display.Location()).AddDate(0, delta, 0)
	if monthIndex(shifted) < monthIndex(from) || monthIndex(shifted) > monthIndex(to) {
		return display
	}
	return shifted
}

func clampMonth(t, from, to time.Time) time.Time {
	switch {
	case monthIndex(t) < monthIndex(from):
		return time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	case monthIndex(t) > monthIndex(to):
		return time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	default:
		return t
	}
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
