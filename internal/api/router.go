package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Appointments.
	r.Post("/appointments", h.BookAppointment)
	r.Get("/appointments", h.ListAppointments)

	// Calendar.
	r.Get("/calendar/week", h.WeekView)
	r.Get("/calendar/slots", h.Offering)
	r.Get("/calendar/month", h.MonthView)
	r.Post("/calendar/jump", h.Jump)

	// Clients and their journals.
	r.Get("/clients", h.ListClients)
	r.Post("/clients", h.RegisterClient)
	r.Get("/clients/{id}", h.GetClient)
	r.Get("/clients/{id}/journal", h.ListJournal)
	r.Post("/clients/{id}/journal", h.CreateJournal)
	r.Get("/clients/{id}/journal/export", h.ExportJournal)
	r.Post("/clients/{id}/journal/import", h.ImportJournal)
	r.Put("/clients/{id}/journal/{entryID}", h.UpdateJournal)
	r.Delete("/clients/{id}/journal/{entryID}", h.DeleteJournal)
	r.Post("/clients/{id}/journal/{entryID}/favorite", h.ToggleJournalFlag("favorite"))
	r.Post("/clients/{id}/journal/{entryID}/lock", h.ToggleJournalFlag("lock"))
	r.Post("/clients/{id}/journal/{entryID}/reminder", h.ToggleJournalFlag("reminder"))

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
