// Package booking implements the appointment creation flow: the fixed slot
// and duration enumerations, the bookable date window, and field-level
// validation of booking requests.
package booking

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ostenfeld/klinika/internal/dateutil"
	"github.com/ostenfeld/klinika/internal/models"
	"github.com/ostenfeld/klinika/internal/schedule"
)

// Request carries the booking form fields. Date, StartTime, and Duration are
// optional and default to today, the first offered slot, and 60 minutes.
type Request struct {
	Service   string    `json:"service"`
	Client    string    `json:"client"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	Duration  int       `json:"duration"`
}

// Planner validates booking requests against the clinic's offering and
// commits valid ones to the appointment store.
type Planner struct {
	store     *schedule.Store
	now       func() time.Time
	startHour int
	endHour   int
	slotStep  int
	horizon   int // months
	durations []int
}

// NewPlanner creates a planner over store. startHour/endHour bound the
// offered slots (the last slot starts slotStep minutes before endHour),
// horizonMonths bounds the date window, durations lists the offered lengths.
func NewPlanner(store *schedule.Store, now func() time.Time, startHour, endHour, slotStep, horizonMonths int, durations []int) *Planner {
	if now == nil {
		now = time.Now
	}
	if endHour <= startHour {
		startHour, endHour = 9, 17
	}
	if slotStep <= 0 {
		slotStep = 15
	}
	if horizonMonths <= 0 {
		horizonMonths = 3
	}
	if len(durations) == 0 {
		durations = []int{30, 45, 60, 90}
	}
	return &Planner{
		store:     store,
		now:       now,
		startHour: startHour,
		endHour:   endHour,
		slotStep:  slotStep,
		horizon:   horizonMonths,
		durations: durations,
	}
}

// Slots returns the fixed enumeration of offered start times.
func (p *Planner) Slots() []string {
	var out []string
	for m := p.startHour * 60; m < p.endHour*60; m += p.slotStep {
		out = append(out, dateutil.Clock{Hour: m / 60, Minute: m % 60}.String())
	}
	return out
}

// Durations returns the offered appointment lengths in minutes.
func (p *Planner) Durations() []int {
	out := make([]int, len(p.durations))
	copy(out, p.durations)
	return out
}

// Window returns the inclusive bookable date range [today, today+horizon].
func (p *Planner) Window() (from, to time.Time) {
	today := dateutil.Midnight(p.now())
	return today, today.AddDate(0, p.horizon, 0)
}

// Validate checks a request against the offering. The returned error is a
// validation.Errors map keyed by field name so callers can surface messages
// next to the offending field; nil means the request is bookable.
func (p *Planner) Validate(req Request) error {
	from, to := p.Window()
	return validation.ValidateStruct(&req,
		validation.Field(&req.Service, validation.Required.Error("service is required")),
		validation.Field(&req.Client, validation.Required.Error("client is required")),
		validation.Field(&req.StartTime, validation.By(p.checkSlot)),
		validation.Field(&req.Duration, validation.By(p.checkDuration)),
		validation.Field(&req.Date, validation.By(checkWindow(from, to))),
	)
}

func (p *Planner) checkSlot(v interface{}) error {
	s, _ := v.(string)
	for _, slot := range p.Slots() {
		if s == slot {
			return nil
		}
	}
	return fmt.Errorf("start time %q is not an offered slot", s)
}

func (p *Planner) checkDuration(v interface{}) error {
	d, _ := v.(int)
	for _, offered := range p.durations {
		if d == offered {
			return nil
		}
	}
	return fmt.Errorf("duration %d is not offered", d)
}

func checkWindow(from, to time.Time) validation.RuleFunc {
	return func(v interface{}) error {
		d, _ := v.(time.Time)
		// Compare calendar days, not instants: the request date and the
		// window boundaries may carry different locations.
		if dateutil.CompareDay(d, from) < 0 {
			return fmt.Errorf("date is before %s", from.Format("2006-01-02"))
		}
		if dateutil.CompareDay(d, to) > 0 {
			return fmt.Errorf("date is after %s", to.Format("2006-01-02"))
		}
		return nil
	}
}

// Book applies form defaults, validates, and commits the appointment.
// Nothing is stored when validation fails.
func (p *Planner) Book(req Request) (models.Appointment, error) {
	if req.Date.IsZero() {
		req.Date = dateutil.Midnight(p.now())
	}
	if req.StartTime == "" {
		req.StartTime = dateutil.Clock{Hour: p.startHour}.String()
	}
	if req.Duration == 0 {
		req.Duration = 60
	}
	if err := p.Validate(req); err != nil {
		return models.Appointment{}, err
	}
	return p.store.Add(models.AppointmentInput{
		Service:   req.Service,
		Client:    req.Client,
		Date:      req.Date,
		StartTime: req.StartTime,
		Duration:  req.Duration,
	})
}
