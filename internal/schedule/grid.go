package schedule

import (
	"fmt"
	"time"

	"github.com/ostenfeld/klinika/internal/dateutil"
	"github.com/ostenfeld/klinika/internal/models"
)

// Block is an appointment positioned inside a day column. Top and Height are
// expressed in the grid's row unit (rem at 1 unit per hour row), measured
// from the top of the display window.
type Block struct {
	Appointment models.Appointment `json:"appointment"`
	Top         float64            `json:"top"`
	Height      float64            `json:"height"`
}

// Day is one column of the week grid.
type Day struct {
	Date    time.Time `json:"date"`
	IsToday bool      `json:"is_today"`
	Blocks  []Block   `json:"blocks"`
}

// WeekView is the fully computed layout for one Monday-start week.
type WeekView struct {
	WeekStart time.Time `json:"week_start"`
	ISOYear   int       `json:"iso_year"`
	ISOWeek   int       `json:"iso_week"`
	Label     string    `json:"label"`
	Hours     []string  `json:"hours"`
	Days      []Day     `json:"days"`
}

// Grid computes week layouts over an appointment store for a fixed display
// window of business hours.
type Grid struct {
	store     *Store
	startHour int
	endHour   int
	rowUnit   float64
}

// NewGrid creates a grid over store. startHour and endHour bound the display
// window (hour rows), rowUnit is the rendered height of one hour row.
func NewGrid(store *Store, startHour, endHour int, rowUnit float64) *Grid {
	if endHour <= startHour {
		startHour, endHour = 9, 17
	}
	if rowUnit <= 0 {
		rowUnit = 4
	}
	return &Grid{store: store, startHour: startHour, endHour: endHour, rowUnit: rowUnit}
}

// Week computes the layout of the week containing ref. now determines which
// column is flagged as today.
func (g *Grid) Week(ref, now time.Time) WeekView {
	ws := dateutil.WeekStart(ref)
	isoYear, isoWeek := dateutil.ISOWeek(ref)

	hours := make([]string, 0, g.endHour-g.startHour+1)
	for h := g.startHour; h <= g.endHour; h++ {
		hours = append(hours, fmt.Sprintf("%d:00", h))
	}

	days := make([]Day, 7)
	for i := range days {
		date := ws.AddDate(0, 0, i)
		appts := g.store.ByDay(date)
		blocks := make([]Block, 0, len(appts))
		for _, a := range appts {
			top, height := g.layout(a)
			blocks = append(blocks, Block{Appointment: a, Top: top, Height: height})
		}
		days[i] = Day{Date: date, IsToday: dateutil.SameDay(date, now), Blocks: blocks}
	}

	return WeekView{
		WeekStart: ws,
		ISOYear:   isoYear,
		ISOWeek:   isoWeek,
		Label:     WeekLabel(ws),
		Hours:     hours,
		Days:      days,
	}
}

// layout positions one appointment: vertical offset from the window start and
// block height, both proportional to duration in hours times the row unit.
func (g *Grid) layout(a models.Appointment) (top, height float64) {
	c, err := dateutil.ParseClock(a.StartTime)
	if err != nil {
		return 0, float64(a.Duration) / 60 * g.rowUnit
	}
	sinceWindow := c.Minutes() - g.startHour*60
	top = float64(sinceWindow) / 60 * g.rowUnit
	height = float64(a.Duration) / 60 * g.rowUnit
	return top, height
}

// WeekLabel renders the displayed date range of the week starting at ws.
// When both boundary days share a month the month name appears once.
func WeekLabel(ws time.Time) string {
	end := ws.AddDate(0, 0, 6)
	if ws.Month() == end.Month() {
		return fmt.Sprintf("%d – %d %s %d", ws.Day(), end.Day(), end.Month(), end.Year())
	}
	return fmt.Sprintf("%d %s – %d %s %d", ws.Day(), ws.Month(), end.Day(), end.Month(), end.Year())
}
