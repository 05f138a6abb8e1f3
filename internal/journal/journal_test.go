package journal

import (
	"errors"
	"reflect"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ostenfeld/klinika/internal/apperr"
	"github.com/ostenfeld/klinika/internal/models"
)

var baseTime = time.Date(2025, time.November, 11, 10, 0, 0, 0, time.UTC)

// testClock hands out strictly increasing instants so UpdatedAt comparisons
// are deterministic.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func testStore(t *testing.T, seed ...models.JournalEntry) (*Store, *testClock) {
	t.Helper()
	clock := &testClock{t: baseTime}
	client := models.Client{ID: "c1", Name: "Anna Holm", JournalEntries: seed}
	return NewStore(client, clock.Now), clock
}

func TestSeedEntriesGetDefaults(t *testing.T) {
	s, _ := testStore(t, models.JournalEntry{Title: "Migraine", Date: baseTime, Notes: "initial"})
	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].ID == "" {
		t.Error("seed entry has no id")
	}
	if entries[0].Practitioner != DefaultPractitioner {
		t.Errorf("practitioner = %q", entries[0].Practitioner)
	}
}

func TestCreateValidatesFields(t *testing.T) {
	s, _ := testStore(t)

	_, err := s.Create(EntryInput{Title: "Follow-up"})
	var fields validation.Errors
	if !errors.As(err, &fields) || fields["notes"] == nil {
		t.Errorf("empty notes not reported: %v", err)
	}

	_, err = s.Create(EntryInput{Notes: "some notes"})
	if !errors.As(err, &fields) || fields["title"] == nil {
		t.Errorf("empty title not reported: %v", err)
	}

	if len(s.Entries()) != 0 {
		t.Error("invalid entry was committed")
	}
}

func TestCreateDefaultsDateToNow(t *testing.T) {
	s, _ := testStore(t)
	e, err := s.Create(EntryInput{Title: "Follow-up", Notes: "all good"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.Date.IsZero() {
		t.Error("date not defaulted")
	}
	if e.ID == "" {
		t.Error("no id assigned")
	}
}

func TestUpdateAppendsHistory(t *testing.T) {
	s, _ := testStore(t)
	e, err := s.Create(EntryInput{Title: "Follow-up", Notes: "v1"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := s.Update(e.ID, EntryEdit{Title: "Follow-up", Notes: "v2"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.History) != 1 {
		t.Fatalf("history = %d records, want 1", len(updated.History))
	}
	if updated.History[0].Notes != "v1" {
		t.Errorf("snapshot notes = %q, want pre-edit state", updated.History[0].Notes)
	}
	if !updated.UpdatedAt.After(e.UpdatedAt) {
		t.Errorf("UpdatedAt not advanced: %v -> %v", e.UpdatedAt, updated.UpdatedAt)
	}
	if updated.Notes != "v2" {
		t.Errorf("notes = %q", updated.Notes)
	}

	// A second edit appends exactly one more record.
	again, err := s.Update(e.ID, EntryEdit{Title: "Follow-up", Notes: "v3"})
	if err != nil {
		t.Fatal(err)
	}
	if len(again.History) != 2 {
		t.Errorf("history = %d records, want 2", len(again.History))
	}
}

func TestLockedEntryRefusesMutations(t *testing.T) {
	s, _ := testStore(t)
	e, err := s.Create(EntryInput{Title: "Confidential", Notes: "sealed"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleLock(e.ID); err != nil {
		t.Fatal(err)
	}
	before := s.Entries()

	if _, err := s.Update(e.ID, EntryEdit{Title: "X", Notes: "Y"}); !errors.Is(err, apperr.ErrLocked) {
		t.Errorf("update on locked entry: %v", err)
	}
	// The lock wins over field validation: an invalid edit still reports
	// the lock, not a form error.
	if _, err := s.Update(e.ID, EntryEdit{}); !errors.Is(err, apperr.ErrLocked) {
		t.Errorf("empty edit on locked entry: %v", err)
	}
	if err := s.Delete(e.ID); !errors.Is(err, apperr.ErrLocked) {
		t.Errorf("delete on locked entry: %v", err)
	}
	if _, err := s.ToggleReminder(e.ID); !errors.Is(err, apperr.ErrLocked) {
		t.Errorf("reminder on locked entry: %v", err)
	}

	if !reflect.DeepEqual(before, s.Entries()) {
		t.Error("locked entry was mutated")
	}

	// Favorite and unlock stay available.
	if _, err := s.ToggleFavorite(e.ID); err != nil {
		t.Errorf("favorite on locked entry: %v", err)
	}
	unlocked, err := s.ToggleLock(e.ID)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if unlocked.Flags.Locked {
		t.Error("still locked after toggle")
	}
	if _, err := s.Update(e.ID, EntryEdit{Title: "X", Notes: "Y"}); err != nil {
		t.Errorf("update after unlock: %v", err)
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	s, _ := testStore(t)
	e, err := s.Create(EntryInput{Title: "Temp", Notes: "n"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(e.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
	if err := s.Delete("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestEntriesSortedNewestFirst(t *testing.T) {
	s, _ := testStore(t)
	mustCreate := func(title string, date time.Time) {
		t.Helper()
		if _, err := s.Create(EntryInput{Title: title, Notes: "n", Date: date}); err != nil {
			t.Fatal(err)
		}
	}
	mustCreate("old", baseTime.AddDate(0, -2, 0))
	mustCreate("newest", baseTime.AddDate(0, 1, 0))
	mustCreate("middle", baseTime)

	got := s.Entries()
	want := []string{"newest", "middle", "old"}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("entries[%d] = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestSearchMatchesTitleNotesAndDate(t *testing.T) {
	s, _ := testStore(t)
	date := time.Date(2025, time.November, 11, 0, 0, 0, 0, time.UTC)
	if _, err := s.Create(EntryInput{Title: "Migraine", Notes: "chronic headaches", Date: date}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(EntryInput{Title: "Back pain", Notes: "lower back", Date: date.AddDate(0, -1, 0)}); err != nil {
		t.Fatal(err)
	}

	if got := s.Search("MIGRAINE"); len(got) != 1 || got[0].Title != "Migraine" {
		t.Errorf("title search = %v", got)
	}
	if got := s.Search("headache"); len(got) != 1 {
		t.Errorf("notes search = %d hits", len(got))
	}
	if got := s.Search("11-11-2025"); len(got) != 1 {
		t.Errorf("date search = %d hits", len(got))
	}
	if got := s.Search(""); len(got) != 2 {
		t.Errorf("empty query = %d hits, want all", len(got))
	}
	if got := s.Search("nothing-matches"); len(got) != 0 {
		t.Errorf("miss = %d hits", len(got))
	}
	// Search does not mutate the store.
	if got := len(s.Entries()); got != 2 {
		t.Errorf("entries after search = %d", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s, _ := testStore(t)
	if _, err := s.Create(EntryInput{Title: "Migraine", Notes: "chronic", Date: baseTime}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(EntryInput{Title: "Follow-up", Notes: "better", Date: baseTime.AddDate(0, 0, 7)}); err != nil {
		t.Fatal(err)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	fresh, _ := testStore(t)
	added, err := fresh.Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if added != 2 {
		t.Errorf("imported %d entries, want 2", added)
	}

	orig, restored := s.Entries(), fresh.Entries()
	for i := range orig {
		if orig[i].ID != restored[i].ID ||
			orig[i].Title != restored[i].Title ||
			orig[i].Notes != restored[i].Notes ||
			!orig[i].Date.Equal(restored[i].Date) {
			t.Errorf("entry %d not preserved: %+v vs %+v", i, orig[i], restored[i])
		}
	}

	// Re-importing the same document is a no-op.
	if added, err := fresh.Import(data); err != nil || added != 0 {
		t.Errorf("re-import: added=%d err=%v", added, err)
	}
}
