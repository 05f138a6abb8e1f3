package mcpserver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ostenfeld/klinika/internal/api"
	"github.com/ostenfeld/klinika/internal/booking"
	"github.com/ostenfeld/klinika/internal/clients"
	"github.com/ostenfeld/klinika/internal/models"
	"github.com/ostenfeld/klinika/internal/schedule"
)

var testNow = time.Date(2025, time.November, 11, 12, 0, 0, 0, time.UTC)

func testServer(t *testing.T) (*Server, *clients.Directory) {
	t.Helper()

	now := func() time.Time { return testNow }
	store := schedule.NewStore()
	grid := schedule.NewGrid(store, 9, 17, 4)
	planner := booking.NewPlanner(store, now, 9, 17, 15, 3, []int{30, 45, 60, 90})
	dir := clients.NewDirectory(now)

	svc := api.NewService(store, grid, planner, dir, nil, now)
	return New(svc), dir
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go doesn't expose a direct "call tool" test helper, so we call the
	// tool handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "book_appointment":
		result, err = srv.bookAppointment(ctx, req)
	case "list_appointments":
		result, err = srv.listAppointments(ctx, req)
	case "week_view":
		result, err = srv.weekView(ctx, req)
	case "get_booking_rules":
		result, err = srv.getBookingRules(ctx, req)
	case "add_journal_entry":
		result, err = srv.addJournalEntry(ctx, req)
	case "search_journal":
		result, err = srv.searchJournal(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestBookAndListAppointments(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "book_appointment", map[string]interface{}{
		"service":    "Massage",
		"client":     "Anna Jensen",
		"date":       "2025-11-11",
		"start_time": "10:00",
		"duration":   60,
	})
	if r.IsError {
		t.Fatalf("book failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "Anna Jensen") {
		t.Errorf("book result = %q", resultText(r))
	}

	r = callTool(t, srv, "list_appointments", map[string]interface{}{"date": "2025-11-11"})
	if !strings.Contains(resultText(r), "Massage") {
		t.Errorf("list result = %q", resultText(r))
	}

	r = callTool(t, srv, "list_appointments", map[string]interface{}{"date": "2025-11-12"})
	if resultText(r) != "no appointments found" {
		t.Errorf("empty day result = %q", resultText(r))
	}
}

func TestBookRejectsBadSlot(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "book_appointment", map[string]interface{}{
		"service":    "Massage",
		"client":     "Anna Jensen",
		"date":       "2025-11-11",
		"start_time": "10:07",
		"duration":   60,
	})
	if !r.IsError {
		t.Error("expected error for off-grid start time")
	}
}

func TestWeekView(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "week_view", map[string]interface{}{"date": "2025-11-11"})
	text := resultText(r)
	if !strings.Contains(text, `"iso_week": 46`) {
		t.Errorf("week view = %q", text)
	}
}

func TestBookingRules(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_booking_rules", map[string]interface{}{})
	if !strings.Contains(resultText(r), "09:00") {
		t.Error("rules missing slot range")
	}
}

func TestJournalTools(t *testing.T) {
	srv, dir := testServer(t)
	client, err := dir.Register(models.Client{Name: "Anna Jensen"})
	if err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "add_journal_entry", map[string]interface{}{
		"client_id": client.ID,
		"title":     "First consultation",
		"notes":     "Initial assessment.",
		"date":      "2025-11-11",
	})
	if r.IsError {
		t.Fatalf("add entry failed: %s", resultText(r))
	}

	r = callTool(t, srv, "search_journal", map[string]interface{}{
		"client_id": client.ID,
		"query":     "assessment",
	})
	if !strings.Contains(resultText(r), "First consultation") {
		t.Errorf("search result = %q", resultText(r))
	}

	r = callTool(t, srv, "search_journal", map[string]interface{}{
		"client_id": "nope",
		"query":     "x",
	})
	if !r.IsError {
		t.Error("expected error for unknown client")
	}
}
