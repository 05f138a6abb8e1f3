package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ostenfeld/klinika/internal/apperr"
	"github.com/ostenfeld/klinika/internal/booking"
	"github.com/ostenfeld/klinika/internal/checksum"
	"github.com/ostenfeld/klinika/internal/journal"
	"github.com/ostenfeld/klinika/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// parseDay parses a "YYYY-MM-DD" query value.
func parseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// BookAppointment handles POST /api/appointments.
// Invalid submissions get a 422 with per-field messages; nothing is stored.
func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	var date time.Time
	if req.Date != "" {
		d, err := parseDay(req.Date)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, fieldErrorBody(validation.Errors{
				"date": errors.New("date must be YYYY-MM-DD"),
			}))
			return
		}
		date = d
	}

	appt, err := h.svc.BookAppointment(r.Context(), booking.Request{
		Service:   req.Service,
		Client:    req.Client,
		Date:      date,
		StartTime: req.StartTime,
		Duration:  req.Duration,
	})
	if err != nil {
		var fields validation.Errors
		if errors.As(err, &fields) {
			writeJSON(w, http.StatusUnprocessableEntity, fieldErrorBody(fields))
			return
		}
		slog.Error("book appointment failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

// ListAppointments handles GET /api/appointments?day=|client=.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if dayStr := q.Get("day"); dayStr != "" {
		day, err := parseDay(dayStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("day must be YYYY-MM-DD"))
			return
		}
		writeJSON(w, http.StatusOK, AppointmentListResponse{
			Appointments: h.svc.AppointmentsByDay(r.Context(), day),
		})
		return
	}

	if client := q.Get("client"); client != "" {
		writeJSON(w, http.StatusOK, AppointmentListResponse{
			Appointments: h.svc.AppointmentsByClient(r.Context(), client),
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, errorBody("day or client query parameter is required"))
}

// WeekView handles GET /api/calendar/week?date=.
func (h *Handler) WeekView(w http.ResponseWriter, r *http.Request) {
	var ref time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		d, err := parseDay(dateStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("date must be YYYY-MM-DD"))
			return
		}
		ref = d
	}
	writeJSON(w, http.StatusOK, h.svc.WeekView(r.Context(), ref))
}

// Offering handles GET /api/calendar/slots.
func (h *Handler) Offering(w http.ResponseWriter, r *http.Request) {
	slots, durations, from, to := h.svc.Offering(r.Context())
	writeJSON(w, http.StatusOK, OfferingResponse{
		Slots:      slots,
		Durations:  durations,
		WindowFrom: from.Format("2006-01-02"),
		WindowTo:   to.Format("2006-01-02"),
	})
}

// MonthView handles GET /api/calendar/month?month=YYYY-MM.
func (h *Handler) MonthView(w http.ResponseWriter, r *http.Request) {
	var display time.Time
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		m, err := time.Parse("2006-01", monthStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("month must be YYYY-MM"))
			return
		}
		display = m
	}
	writeJSON(w, http.StatusOK, h.svc.MonthView(r.Context(), display))
}

// Jump handles POST /api/calendar/jump: registers a one-shot jump-to-date
// signal that the next week view consumes.
func (h *Handler) Jump(w http.ResponseWriter, r *http.Request) {
	var req JumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	day, err := parseDay(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("date must be YYYY-MM-DD"))
		return
	}
	h.svc.RequestJump(r.Context(), day)
	w.WriteHeader(http.StatusAccepted)
}

// ListClients handles GET /api/clients.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ClientListResponse{Clients: h.svc.Clients(r.Context())})
}

// RegisterClient handles POST /api/clients.
func (h *Handler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if c.Name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrorBody(validation.Errors{
			"name": errors.New("name is required"),
		}))
		return
	}
	created, err := h.svc.RegisterClient(r.Context(), c)
	if err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			writeJSON(w, http.StatusConflict, errorBody("client already exists"))
			return
		}
		slog.Error("register client failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetClient handles GET /api/clients/{id}.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Client(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ListJournal handles GET /api/clients/{id}/journal?q=.
func (h *Handler) ListJournal(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	entries, err := h.svc.JournalEntries(r.Context(), clientID, r.URL.Query().Get("q"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, JournalListResponse{Entries: entries})
}

// CreateJournal handles POST /api/clients/{id}/journal.
func (h *Handler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	var req JournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	in := journal.EntryInput{
		Title:        req.Title,
		Notes:        req.Notes,
		Practitioner: req.Practitioner,
		Private:      req.Private,
		Draft:        req.Draft,
	}
	if req.Date != "" {
		d, err := parseDay(req.Date)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, fieldErrorBody(validation.Errors{
				"date": errors.New("date must be YYYY-MM-DD"),
			}))
			return
		}
		in.Date = d
	}

	entry, err := h.svc.CreateJournalEntry(r.Context(), clientID, in)
	if err != nil {
		h.writeJournalError(w, "create journal entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// UpdateJournal handles PUT /api/clients/{id}/journal/{entryID}.
func (h *Handler) UpdateJournal(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")

	var req JournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	edit := journal.EntryEdit{Title: req.Title, Notes: req.Notes}
	if req.Date != "" {
		d, err := parseDay(req.Date)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, fieldErrorBody(validation.Errors{
				"date": errors.New("date must be YYYY-MM-DD"),
			}))
			return
		}
		edit.Date = d
	}

	entry, err := h.svc.UpdateJournalEntry(r.Context(), clientID, entryID, edit)
	if err != nil {
		h.writeJournalError(w, "update journal entry", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// DeleteJournal handles DELETE /api/clients/{id}/journal/{entryID}.
func (h *Handler) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")

	if err := h.svc.DeleteJournalEntry(r.Context(), clientID, entryID); err != nil {
		h.writeJournalError(w, "delete journal entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleJournalFlag handles POST /api/clients/{id}/journal/{entryID}/{flag}
// for favorite, lock, and reminder.
func (h *Handler) ToggleJournalFlag(flag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "id")
		entryID := chi.URLParam(r, "entryID")

		entry, err := h.svc.ToggleJournalFlag(r.Context(), clientID, entryID, flag)
		if err != nil {
			h.writeJournalError(w, "toggle "+flag, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

// ExportJournal handles GET /api/clients/{id}/journal/export: a downloadable
// JSON document with the full entry list.
func (h *Handler) ExportJournal(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	data, err := h.svc.ExportJournal(r.Context(), clientID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="journal-`+clientID+`.json"`)
	w.Header().Set("ETag", `"`+checksum.Sum(data)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportJournal handles POST /api/clients/{id}/journal/import.
func (h *Handler) ImportJournal(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}
	if sum := r.Header.Get("X-Content-Checksum"); sum != "" && !checksum.Verify(data, sum) {
		writeJSON(w, http.StatusBadRequest, errorBody("checksum mismatch"))
		return
	}

	added, err := h.svc.ImportJournal(r.Context(), clientID, data)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody("invalid journal document"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": added})
}

// writeJournalError maps journal errors onto status codes: validation to
// 422, lock refusals to 423, unknown ids to 404.
func (h *Handler) writeJournalError(w http.ResponseWriter, op string, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrorBody(fields))
	case errors.Is(err, apperr.ErrLocked):
		writeJSON(w, http.StatusLocked, errorBody("entry is locked"))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
