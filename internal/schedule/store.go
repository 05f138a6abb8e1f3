// Package schedule holds the in-memory appointment collection and the week
// grid layout used by the calendar view.
package schedule

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ostenfeld/klinika/internal/dateutil"
	"github.com/ostenfeld/klinika/internal/models"
)

// DefaultColor is applied when a booking carries no display color.
const DefaultColor = "#bfdbfe"

// Store owns the appointment list for the lifetime of the calendar view.
// Mutations replace the backing slice wholesale, so a snapshot handed to a
// reader is never modified underneath it.
type Store struct {
	mu           sync.RWMutex
	appointments []models.Appointment
}

// NewStore creates an empty appointment store.
func NewStore() *Store {
	return &Store{}
}

// Add validates the input invariants, assigns a fresh id, and stores the
// appointment. Overlapping bookings for the same client and slot are
// deliberately allowed; there is no conflict rule.
func (s *Store) Add(input models.AppointmentInput) (models.Appointment, error) {
	if _, err := dateutil.ParseClock(input.StartTime); err != nil {
		return models.Appointment{}, fmt.Errorf("start time: %w", err)
	}
	if input.Duration <= 0 {
		return models.Appointment{}, fmt.Errorf("duration must be positive, got %d", input.Duration)
	}
	color := input.Color
	if color == "" {
		color = DefaultColor
	}

	appt := models.Appointment{
		ID:        uuid.NewString(),
		Service:   input.Service,
		Client:    input.Client,
		Date:      dateutil.Midnight(input.Date),
		StartTime: input.StartTime,
		Duration:  input.Duration,
		Color:     color,
	}

	s.mu.Lock()
	next := make([]models.Appointment, len(s.appointments), len(s.appointments)+1)
	copy(next, s.appointments)
	s.appointments = append(next, appt)
	s.mu.Unlock()

	return appt, nil
}

// All returns a snapshot of every appointment in insertion order.
func (s *Store) All() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointments
}

// ByDay returns the appointments whose date falls on the given calendar day,
// ignoring time of day.
func (s *Store) ByDay(day time.Time) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Appointment{}
	for _, a := range s.appointments {
		if dateutil.SameDay(a.Date, day) {
			out = append(out, a)
		}
	}
	return out
}

// ByClientName returns the client's appointments, newest first by the
// combined (date, start time) instant.
func (s *Store) ByClientName(name string) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Appointment{}
	for _, a := range s.appointments {
		if a.Client == name {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartsAt().After(out[j].StartsAt())
	})
	return out
}
