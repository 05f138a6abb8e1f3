package api

import (
	"github.com/ostenfeld/klinika/internal/models"
)

// BookRequest is the request body for booking an appointment.
type BookRequest struct {
	Service   string `json:"service" example:"Massage" validate:"required"`
	Client    string `json:"client" example:"Anna Jensen" validate:"required"`
	Date      string `json:"date" example:"2025-11-11" validate:"required"`
	StartTime string `json:"start_time" example:"10:00" validate:"required"`
	Duration  int    `json:"duration" example:"60" validate:"required"`
}

// JumpRequest is the request body for the one-shot calendar jump.
type JumpRequest struct {
	Date string `json:"date" example:"2025-11-11" validate:"required"`
}

// JournalEntryRequest is the request body for creating or editing a
// journal entry.
type JournalEntryRequest struct {
	Title        string `json:"title" example:"First consultation" validate:"required"`
	Date         string `json:"date" example:"2025-11-11"`
	Notes        string `json:"notes" example:"Patient reports..." validate:"required"`
	Practitioner string `json:"practitioner" example:"Dr. Holm"`
	Private      bool   `json:"private"`
	Draft        bool   `json:"draft"`
}

// AppointmentListResponse wraps appointment listings.
type AppointmentListResponse struct {
	Appointments []models.Appointment `json:"appointments" validate:"required"`
}

// OfferingResponse describes what the booking form offers: the bookable
// start times, the allowed durations, and the date window.
type OfferingResponse struct {
	Slots      []string `json:"slots" validate:"required"`
	Durations  []int    `json:"durations" validate:"required"`
	WindowFrom string   `json:"window_from" example:"2025-11-11" validate:"required"`
	WindowTo   string   `json:"window_to" example:"2026-02-11" validate:"required"`
}

// ClientListResponse wraps client listings.
type ClientListResponse struct {
	Clients []models.Client `json:"clients" validate:"required"`
}

// JournalListResponse wraps journal entry listings.
type JournalListResponse struct {
	Entries []models.JournalEntry `json:"entries" validate:"required"`
}
