// Package testutil provides shared test helpers: pinned clocks and client
// record fixtures.
package testutil

import (
	"sync"
	"time"

	"github.com/ostenfeld/klinika/internal/models"
)

// FixedTime is the reference instant the tests pin "today" to, a Tuesday.
var FixedTime = time.Date(2025, time.November, 11, 12, 0, 0, 0, time.UTC)

// FixedClock returns a clock stuck at FixedTime.
func FixedClock() func() time.Time {
	return func() time.Time { return FixedTime }
}

// TickingClock returns a clock that starts at FixedTime and advances one
// minute per call, so successive timestamps always differ.
func TickingClock() func() time.Time {
	var mu sync.Mutex
	next := FixedTime
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

// SeedClient builds a client record fixture with one journal entry.
func SeedClient(id, name string) models.Client {
	return models.Client{
		ID:     id,
		Name:   name,
		Status: "active",
		JournalEntries: []models.JournalEntry{
			{
				ID:    id + "-e1",
				Title: "First consultation",
				Notes: "Initial assessment.",
				Date:  FixedTime,
			},
		},
	}
}
