// Package journal implements the per-client journal entry collection with
// favorite/lock/draft/history semantics. A Store is scoped to one client and
// discarded when another client's record is opened.
package journal

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/ostenfeld/klinika/internal/apperr"
	"github.com/ostenfeld/klinika/internal/dateutil"
	"github.com/ostenfeld/klinika/internal/models"
)

// DefaultPractitioner is recorded when an entry names no practitioner.
const DefaultPractitioner = "Unknown practitioner"

// EntryInput carries the "new entry" form fields.
type EntryInput struct {
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Notes        string    `json:"notes"`
	Practitioner string    `json:"practitioner"`
	Private      bool      `json:"private"`
	Draft        bool      `json:"draft"`
}

// EntryEdit carries the editable fields of an existing entry.
type EntryEdit struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Notes string    `json:"notes"`
}

// Store owns the journal entries of a single client. Mutations replace the
// backing slice, so snapshots returned to readers are never modified.
type Store struct {
	mu       sync.RWMutex
	clientID string
	entries  []models.JournalEntry
	now      func() time.Time
}

// NewStore creates a journal store for client, seeded with the entries
// carried on the client record.
func NewStore(client models.Client, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	seed := make([]models.JournalEntry, len(client.JournalEntries))
	copy(seed, client.JournalEntries)
	for i := range seed {
		if seed[i].ID == "" {
			seed[i].ID = uuid.NewString()
		}
		if seed[i].Practitioner == "" {
			seed[i].Practitioner = DefaultPractitioner
		}
	}
	return &Store{clientID: client.ID, entries: seed, now: now}
}

// ClientID returns the id of the client this store is scoped to.
func (s *Store) ClientID() string {
	return s.clientID
}

// Entries returns a snapshot of all entries, newest date first.
func (s *Store) Entries() []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByDateDesc(s.entries)
}

// Get returns one entry by id.
func (s *Store) Get(id string) (models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.JournalEntry{}, apperr.ErrNotFound
}

// Create validates the form and appends a new entry. Title and notes must be
// non-empty; the date defaults to now when absent. The returned error is a
// validation.Errors map keyed by field when the form is invalid.
func (s *Store) Create(in EntryInput) (models.JournalEntry, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("title is required")),
		validation.Field(&in.Notes, validation.Required.Error("notes are required")),
	); err != nil {
		return models.JournalEntry{}, err
	}

	now := s.now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	practitioner := in.Practitioner
	if practitioner == "" {
		practitioner = DefaultPractitioner
	}

	entry := models.JournalEntry{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Date:         date,
		Notes:        strings.TrimSpace(in.Notes),
		Practitioner: practitioner,
		Flags:        models.EntryFlags{Private: in.Private, Draft: in.Draft},
		UpdatedAt:    now,
	}

	s.mu.Lock()
	s.entries = replaceOrAppend(s.entries, entry)
	s.mu.Unlock()
	return entry, nil
}

// Update applies an edit to an unlocked entry, appending the pre-edit state
// to its history and stamping UpdatedAt. A locked entry is refused with
// ErrLocked and the store is left untouched.
func (s *Store) Update(id string, edit EntryEdit) (models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.find(id)
	if !ok {
		return models.JournalEntry{}, apperr.ErrNotFound
	}
	// Guard first: a locked entry reports the lock, not a form error.
	if cur.Flags.Locked {
		return models.JournalEntry{}, apperr.ErrLocked
	}

	if err := validation.ValidateStruct(&edit,
		validation.Field(&edit.Title, validation.Required.Error("title is required")),
		validation.Field(&edit.Notes, validation.Required.Error("notes are required")),
	); err != nil {
		return models.JournalEntry{}, err
	}

	next := cur
	next.History = append(historyCopy(cur.History), models.EntrySnapshot{
		Title:     cur.Title,
		Notes:     cur.Notes,
		Date:      cur.Date,
		UpdatedAt: cur.UpdatedAt,
	})
	next.Title = strings.TrimSpace(edit.Title)
	next.Notes = strings.TrimSpace(edit.Notes)
	if !edit.Date.IsZero() {
		next.Date = edit.Date
	}
	next.UpdatedAt = s.now()

	s.entries = replaceOrAppend(s.entries, next)
	return next, nil
}

// Delete removes an unlocked entry. Locked entries are refused with ErrLocked.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.find(id)
	if !ok {
		return apperr.ErrNotFound
	}
	if cur.Flags.Locked {
		return apperr.ErrLocked
	}

	next := make([]models.JournalEntry, 0, len(s.entries)-1)
	for _, e := range s.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	s.entries = next
	return nil
}

// ToggleFavorite flips the favorite flag. Available on locked entries too.
func (s *Store) ToggleFavorite(id string) (models.JournalEntry, error) {
	return s.toggle(id, false, func(f *models.EntryFlags) { f.Favorite = !f.Favorite })
}

// ToggleLock flips the lock flag.
func (s *Store) ToggleLock(id string) (models.JournalEntry, error) {
	return s.toggle(id, false, func(f *models.EntryFlags) { f.Locked = !f.Locked })
}

// ToggleReminder flips the reminder flag, refused on locked entries.
func (s *Store) ToggleReminder(id string) (models.JournalEntry, error) {
	return s.toggle(id, true, func(f *models.EntryFlags) { f.Reminder = !f.Reminder })
}

func (s *Store) toggle(id string, lockGated bool, apply func(*models.EntryFlags)) (models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.find(id)
	if !ok {
		return models.JournalEntry{}, apperr.ErrNotFound
	}
	if lockGated && cur.Flags.Locked {
		return models.JournalEntry{}, apperr.ErrLocked
	}

	next := cur
	apply(&next.Flags)
	s.entries = replaceOrAppend(s.entries, next)
	return next, nil
}

// Search returns the entries whose title, notes, or displayed date contain q,
// case-insensitively, sorted newest first. The underlying store is not
// modified; an empty query matches everything.
func (s *Store) Search(q string) []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return sortedByDateDesc(s.entries)
	}

	out := []models.JournalEntry{}
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Notes), q) ||
			strings.Contains(dateutil.DisplayDate(e.Date), q) {
			out = append(out, e)
		}
	}
	return sortedByDateDesc(out)
}

// Export serializes the entry list to JSON, newest first. The encoding is
// lossless for id, title, notes, and date, so Import restores them exactly.
func (s *Store) Export() ([]byte, error) {
	return json.MarshalIndent(s.Entries(), "", "  ")
}

// Import appends entries from a Export-shaped JSON document, preserving ids.
// Entries whose id is already present are skipped.
func (s *Store) Import(data []byte) (int, error) {
	var incoming []models.JournalEntry
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.JournalEntry, len(s.entries), len(s.entries)+len(incoming))
	copy(next, s.entries)
	added := 0
	for _, e := range incoming {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if _, exists := findIn(next, e.ID); exists {
			continue
		}
		if e.Practitioner == "" {
			e.Practitioner = DefaultPractitioner
		}
		next = append(next, e)
		added++
	}
	s.entries = next
	return added, nil
}

// find looks up an entry while the caller holds the lock.
func (s *Store) find(id string) (models.JournalEntry, bool) {
	return findIn(s.entries, id)
}

func findIn(entries []models.JournalEntry, id string) (models.JournalEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.JournalEntry{}, false
}

// replaceOrAppend returns a fresh slice with entry swapped in (matched by id)
// or appended, keeping creation order stable.
func replaceOrAppend(entries []models.JournalEntry, entry models.JournalEntry) []models.JournalEntry {
	next := make([]models.JournalEntry, len(entries), len(entries)+1)
	copy(next, entries)
	for i := range next {
		if next[i].ID == entry.ID {
			next[i] = entry
			return next
		}
	}
	return append(next, entry)
}

func historyCopy(h []models.EntrySnapshot) []models.EntrySnapshot {
	out := make([]models.EntrySnapshot, len(h))
	copy(out, h)
	return out
}

func sortedByDateDesc(entries []models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
