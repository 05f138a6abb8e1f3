// Package models defines the domain types for Klinika.
package models

import (
	"time"

	"github.com/ostenfeld/klinika/internal/dateutil"
)

// Appointment is a scheduled service booking for a named client.
// Appointments are immutable once created.
type Appointment struct {
	ID        string    `json:"id"`
	Service   string    `json:"service"`
	Client    string    `json:"client"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"` // "HH:MM", 24h
	Duration  int       `json:"duration"`   // minutes
	Color     string    `json:"color"`
}

// StartsAt combines Date and StartTime into a single instant.
// A malformed StartTime falls back to midnight of Date.
func (a Appointment) StartsAt() time.Time {
	c, err := dateutil.ParseClock(a.StartTime)
	if err != nil {
		return a.Date
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), c.Hour, c.Minute, 0, 0, a.Date.Location())
}

// AppointmentInput carries the fields supplied by the booking form.
type AppointmentInput struct {
	Service   string    `json:"service"`
	Client    string    `json:"client"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	Duration  int       `json:"duration"`
	Color     string    `json:"color"`
}

// EntryFlags holds the per-entry toggles of a journal entry.
type EntryFlags struct {
	Private  bool `json:"private"`
	Draft    bool `json:"draft"`
	Favorite bool `json:"favorite"`
	Locked   bool `json:"locked"`
	Reminder bool `json:"reminder"`
}

// EntrySnapshot is a pre-edit copy of a journal entry, kept in its history.
type EntrySnapshot struct {
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	Date      time.Time `json:"date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalEntry is a dated clinical note attached to a client record.
type JournalEntry struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes"`
	Practitioner string          `json:"practitioner"`
	Flags        EntryFlags      `json:"flags"`
	History      []EntrySnapshot `json:"history,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Client is a client record. Klinika consumes it as seed data for the
// journal view; the contact fields are carried verbatim.
type Client struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Status         string         `json:"status"`
	Email          string         `json:"email,omitempty"`
	Phone          string         `json:"phone,omitempty"`
	Address        string         `json:"address,omitempty"`
	City           string         `json:"city,omitempty"`
	Zip            string         `json:"zip,omitempty"`
	Country        string         `json:"country,omitempty"`
	JournalEntries []JournalEntry `json:"journal_entries,omitempty"`
}
