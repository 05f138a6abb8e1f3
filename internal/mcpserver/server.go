// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Klinika tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ostenfeld/klinika/internal/api"
	"github.com/ostenfeld/klinika/internal/booking"
	"github.com/ostenfeld/klinika/internal/journal"
)

// Server wraps the MCP server with Klinika tools.
type Server struct {
	mcp *server.MCPServer
	svc *api.Service
}

// New creates a new MCP server with all Klinika tools registered.
func New(svc *api.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Klinika",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("book_appointment",
		mcp.WithDescription("Book an appointment for a client. Start times and durations "+
			"are constrained; read the rules first via the get_booking_rules tool or the "+
			"klinika://booking-rules resource."),
		mcp.WithString("service", mcp.Required(), mcp.Description("Treatment name (e.g. Massage)")),
		mcp.WithString("client", mcp.Required(), mcp.Description("Client name")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Appointment date, YYYY-MM-DD")),
		mcp.WithString("start_time", mcp.Required(), mcp.Description("Start time, HH:MM in 15-minute steps from 09:00")),
		mcp.WithNumber("duration", mcp.Required(), mcp.Description("Duration in minutes: 30, 45, 60 or 90")),
	), s.bookAppointment)

	s.mcp.AddTool(mcp.NewTool("list_appointments",
		mcp.WithDescription("List appointments for a calendar day."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Calendar day, YYYY-MM-DD")),
	), s.listAppointments)

	s.mcp.AddTool(mcp.NewTool("week_view",
		mcp.WithDescription("Compute the Monday-start week grid around a date, with "+
			"per-day appointment blocks and their row offsets."),
		mcp.WithString("date", mcp.Description("Any date in the wanted week, YYYY-MM-DD (empty for the current week)")),
	), s.weekView)

	s.mcp.AddTool(mcp.NewTool("get_booking_rules",
		mcp.WithDescription("Returns the canonical Klinika booking rules. "+
			"Call this before booking appointments to learn the allowed slots, durations and window."),
	), s.getBookingRules)

	s.mcp.AddTool(mcp.NewTool("add_journal_entry",
		mcp.WithDescription("Add a journal entry to a client's record."),
		mcp.WithString("client_id", mcp.Required(), mcp.Description("Client id")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Entry title")),
		mcp.WithString("notes", mcp.Required(), mcp.Description("Entry notes")),
		mcp.WithString("date", mcp.Description("Entry date, YYYY-MM-DD (empty for today)")),
		mcp.WithString("practitioner", mcp.Description("Practitioner name")),
	), s.addJournalEntry)

	s.mcp.AddTool(mcp.NewTool("search_journal",
		mcp.WithDescription("Search a client's journal entries by title, notes or displayed date."),
		mcp.WithString("client_id", mcp.Required(), mcp.Description("Client id")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchJournal)

	// Resource: booking rules.
	s.mcp.AddResource(
		mcp.NewResource("klinika://booking-rules", "Booking Rules",
			mcp.WithResourceDescription("Canonical booking constraints that all appointments must satisfy."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readBookingRulesResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) bookAppointment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, err := req.RequireString("service")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	client, err := req.RequireString("client")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dateStr, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startTime, err := req.RequireString("start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	duration := req.GetInt("duration", 0)
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("date must be YYYY-MM-DD: %s", dateStr)), nil
	}

	appt, err := s.svc.BookAppointment(ctx, booking.Request{
		Service:   svc,
		Client:    client,
		Date:      date,
		StartTime: startTime,
		Duration:  duration,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(appt, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listAppointments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateStr, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("date must be YYYY-MM-DD: %s", dateStr)), nil
	}
	appts := s.svc.AppointmentsByDay(ctx, day)
	if len(appts) == 0 {
		return mcp.NewToolResultText("no appointments found"), nil
	}
	out, _ := json.MarshalIndent(appts, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) weekView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var ref time.Time
	if dateStr, err := req.RequireString("date"); err == nil && dateStr != "" {
		d, perr := time.Parse("2006-01-02", dateStr)
		if perr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("date must be YYYY-MM-DD: %s", dateStr)), nil
		}
		ref = d
	}
	view := s.svc.WeekView(ctx, ref)
	out, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addJournalEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := req.RequireString("client_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes, err := req.RequireString("notes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := journal.EntryInput{Title: title, Notes: notes}
	if dateStr, derr := req.RequireString("date"); derr == nil && dateStr != "" {
		d, perr := time.Parse("2006-01-02", dateStr)
		if perr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("date must be YYYY-MM-DD: %s", dateStr)), nil
		}
		in.Date = d
	}
	if p, perr := req.RequireString("practitioner"); perr == nil {
		in.Practitioner = p
	}

	entry, err := s.svc.CreateJournalEntry(ctx, clientID, in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(entry, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := req.RequireString("client_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := s.svc.JournalEntries(ctx, clientID, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", clientID)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no entries found"), nil
	}
	out, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getBookingRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(BookingRulesContract), nil
}

func (s *Server) readBookingRulesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "klinika://booking-rules",
			MIMEType: "text/markdown",
			Text:     BookingRulesContract,
		},
	}, nil
}
