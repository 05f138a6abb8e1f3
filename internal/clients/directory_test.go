package clients

import (
	"errors"
	"testing"

	"github.com/ostenfeld/klinika/internal/apperr"
	"github.com/ostenfeld/klinika/internal/journal"
	"github.com/ostenfeld/klinika/internal/models"
	"github.com/ostenfeld/klinika/internal/testutil"
)

var fixedNow = testutil.FixedClock()

func TestRegisterAndGet(t *testing.T) {
	d := NewDirectory(fixedNow)
	c, err := d.Register(models.Client{Name: "Anna Holm", Status: "active"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if c.ID == "" {
		t.Error("no id assigned")
	}

	got, err := d.Get(c.ID)
	if err != nil || got.Name != "Anna Holm" {
		t.Errorf("Get = %+v, %v", got, err)
	}
	if _, err := d.Get("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get missing = %v", err)
	}
	if _, err := d.Register(models.Client{ID: c.ID, Name: "Dup"}); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate register = %v", err)
	}
}

func TestListSortedByName(t *testing.T) {
	d := NewDirectory(fixedNow,
		models.Client{ID: "1", Name: "Mette"},
		models.Client{ID: "2", Name: "Anna"},
		models.Client{ID: "3", Name: "Jonas"},
	)
	got := d.List()
	want := []string{"Anna", "Jonas", "Mette"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("List[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestOpenJournalSeedsAndResets(t *testing.T) {
	seedEntry := models.JournalEntry{ID: "e1", Title: "Migraine", Notes: "n", Date: fixedNow()}
	d := NewDirectory(fixedNow,
		models.Client{ID: "anna", Name: "Anna", JournalEntries: []models.JournalEntry{seedEntry}},
		models.Client{ID: "bo", Name: "Bo"},
	)

	js, err := d.OpenJournal("anna")
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	if len(js.Entries()) != 1 {
		t.Fatalf("seeded entries = %d", len(js.Entries()))
	}

	// Mutations survive reopening the same client.
	if _, err := js.Create(journal.EntryInput{Title: "New", Notes: "n"}); err != nil {
		t.Fatal(err)
	}
	same, err := d.OpenJournal("anna")
	if err != nil {
		t.Fatal(err)
	}
	if len(same.Entries()) != 2 {
		t.Errorf("reopen lost entries: %d", len(same.Entries()))
	}

	// Switching clients resets; switching back reseeds from the record.
	if _, err := d.OpenJournal("bo"); err != nil {
		t.Fatal(err)
	}
	back, err := d.OpenJournal("anna")
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Entries()) != 1 {
		t.Errorf("entries after client switch = %d, want seed only", len(back.Entries()))
	}

	if _, err := d.OpenJournal("missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("OpenJournal missing = %v", err)
	}
}
