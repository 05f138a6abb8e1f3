package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ostenfeld/klinika/internal/booking"
	"github.com/ostenfeld/klinika/internal/clients"
	"github.com/ostenfeld/klinika/internal/dateutil"
	"github.com/ostenfeld/klinika/internal/journal"
	"github.com/ostenfeld/klinika/internal/models"
	"github.com/ostenfeld/klinika/internal/schedule"
	"github.com/ostenfeld/klinika/internal/sse"
)

// Service coordinates the scheduling, booking, and journal components for
// the API layer and owns the one-shot jump-to-date signal exchanged between
// the client detail view and the calendar.
type Service struct {
	store   *schedule.Store
	grid    *schedule.Grid
	planner *booking.Planner
	dir     *clients.Directory
	broker  *sse.Broker
	now     func() time.Time

	mu   sync.Mutex
	jump *time.Time
}

// NewService wires the API service. broker may be nil when no event stream
// is mounted.
func NewService(store *schedule.Store, grid *schedule.Grid, planner *booking.Planner, dir *clients.Directory, broker *sse.Broker, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, grid: grid, planner: planner, dir: dir, broker: broker, now: now}
}

// BookAppointment validates and commits a booking request.
func (s *Service) BookAppointment(_ context.Context, req booking.Request) (models.Appointment, error) {
	appt, err := s.planner.Book(req)
	if err != nil {
		return models.Appointment{}, err
	}
	if s.broker != nil {
		s.broker.PublishAppointmentCreated(appt.ID, appt.Date.Format("2006-01-02"))
	}
	return appt, nil
}

// AppointmentsByDay lists the appointments on one calendar day.
func (s *Service) AppointmentsByDay(_ context.Context, day time.Time) []models.Appointment {
	return s.store.ByDay(day)
}

// AppointmentsByClient lists a client's appointments, newest first.
func (s *Service) AppointmentsByClient(_ context.Context, name string) []models.Appointment {
	return s.store.ByClientName(name)
}

// WeekView computes the week grid for ref. A zero ref means the current
// week. A pending jump-to-date signal overrides ref and is cleared: the
// signal is consumed by exactly one view.
func (s *Service) WeekView(_ context.Context, ref time.Time) schedule.WeekView {
	now := s.now()

	s.mu.Lock()
	if s.jump != nil {
		ref = *s.jump
		s.jump = nil
	}
	s.mu.Unlock()

	if ref.IsZero() {
		ref = now
	}
	return s.grid.Week(ref, now)
}

// RequestJump records a cross-view jump-to-date signal for the next week
// view to consume.
func (s *Service) RequestJump(_ context.Context, day time.Time) {
	day = dateutil.Midnight(day)

	s.mu.Lock()
	s.jump = &day
	s.mu.Unlock()

	if s.broker != nil {
		s.broker.PublishCalendarJump(day.Format("2006-01-02"))
	}
}

// Offering returns the booking enumerations and the bookable date window.
func (s *Service) Offering(_ context.Context) (slots []string, durations []int, from, to time.Time) {
	from, to = s.planner.Window()
	return s.planner.Slots(), s.planner.Durations(), from, to
}

// MonthView returns the date-picker state for the month containing display.
func (s *Service) MonthView(_ context.Context, display time.Time) booking.MonthView {
	if display.IsZero() {
		display = s.now()
	}
	return s.planner.Month(display)
}

// Clients lists all client records.
func (s *Service) Clients(_ context.Context) []models.Client {
	return s.dir.List()
}

// Client returns one client record.
func (s *Service) Client(_ context.Context, id string) (models.Client, error) {
	return s.dir.Get(id)
}

// RegisterClient adds a client record.
func (s *Service) RegisterClient(_ context.Context, c models.Client) (models.Client, error) {
	return s.dir.Register(c)
}

// JournalEntries returns a client's entries, optionally narrowed by a
// case-insensitive search query, always newest first.
func (s *Service) JournalEntries(_ context.Context, clientID, query string) ([]models.JournalEntry, error) {
	js, err := s.dir.OpenJournal(clientID)
	if err != nil {
		return nil, err
	}
	return js.Search(query), nil
}

// CreateJournalEntry validates and appends a new journal entry.
func (s *Service) CreateJournalEntry(_ context.Context, clientID string, in journal.EntryInput) (models.JournalEntry, error) {
	js, err := s.dir.OpenJournal(clientID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	entry, err := js.Create(in)
	if err != nil {
		return models.JournalEntry{}, err
	}
	s.publishJournal("created", clientID, entry.ID)
	return entry, nil
}

// UpdateJournalEntry applies an edit to an unlocked entry.
func (s *Service) UpdateJournalEntry(_ context.Context, clientID, entryID string, edit journal.EntryEdit) (models.JournalEntry, error) {
	js, err := s.dir.OpenJournal(clientID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	entry, err := js.Update(entryID, edit)
	if err != nil {
		return models.JournalEntry{}, err
	}
	s.publishJournal("updated", clientID, entry.ID)
	return entry, nil
}

// DeleteJournalEntry removes an unlocked entry.
func (s *Service) DeleteJournalEntry(_ context.Context, clientID, entryID string) error {
	js, err := s.dir.OpenJournal(clientID)
	if err != nil {
		return err
	}
	if err := js.Delete(entryID); err != nil {
		return err
	}
	s.publishJournal("deleted", clientID, entryID)
	return nil
}

// ToggleJournalFlag flips one of the entry toggles: "favorite", "lock", or
// "reminder".
func (s *Service) ToggleJournalFlag(_ context.Context, clientID, entryID, flag string) (models.JournalEntry, error) {
	js, err := s.dir.OpenJournal(clientID)
	if err != nil {
		return models.JournalEntry{}, err
	}

	var entry models.JournalEntry
	switch flag {
	case "favorite":
		entry, err = js.ToggleFavorite(entryID)
	case "lock":
		entry, err = js.ToggleLock(entryID)
	case "reminder":
		entry, err = js.ToggleReminder(entryID)
	default:
		return models.JournalEntry{}, fmt.Errorf("unknown flag %q", flag)
	}
	if err != nil {
		return models.JournalEntry{}, err
	}
	s.publishJournal("updated", clientID, entry.ID)
	return entry, nil
}

// ExportJournal serializes a client's journal to JSON.
func (s *Service) ExportJournal(_ context.Context, clientID string) ([]byte, error) {
	js, err := s.dir.OpenJournal(clientID)
	if err != nil {
		return nil, err
	}
	return js.Export()
}

// ImportJournal appends entries from an exported document, preserving ids.
func (s *Service) ImportJournal(_ context.Context, clientID string, data []byte) (int, error) {
	js, err := s.dir.OpenJournal(clientID)
	if err != nil {
		return 0, err
	}
	added, err := js.Import(data)
	if err != nil {
		return 0, err
	}
	if added > 0 {
		s.publishJournal("updated", clientID, "")
	}
	return added, nil
}

func (s *Service) publishJournal(kind, clientID, entryID string) {
	if s.broker != nil {
		s.broker.PublishJournalEvent(kind, clientID, entryID)
	}
}
