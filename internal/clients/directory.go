// Package clients holds the in-memory client directory. Klinika does not own
// client records; the directory is the seed-data supplier for the journal
// view and enforces the one-client-at-a-time journal scoping.
package clients

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ostenfeld/klinika/internal/apperr"
	"github.com/ostenfeld/klinika/internal/journal"
	"github.com/ostenfeld/klinika/internal/models"
)

// Directory is a read-mostly collection of client records plus the single
// active journal store. Opening a different client's journal discards the
// previous store and seeds a fresh one from that client's record.
type Directory struct {
	mu     sync.RWMutex
	byID   map[string]models.Client
	order  []string
	active *journal.Store
	now    func() time.Time
}

// NewDirectory creates a directory with the given seed records.
func NewDirectory(now func() time.Time, seed ...models.Client) *Directory {
	if now == nil {
		now = time.Now
	}
	d := &Directory{byID: make(map[string]models.Client), now: now}
	for _, c := range seed {
		_, _ = d.Register(c)
	}
	return d
}

// Register adds a client record, assigning an id when absent.
func (d *Directory) Register(c models.Client) (models.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, exists := d.byID[c.ID]; exists {
		return models.Client{}, apperr.ErrAlreadyExists
	}
	d.byID[c.ID] = c
	d.order = append(d.order, c.ID)
	return c, nil
}

// Get returns one client record.
func (d *Directory) Get(id string) (models.Client, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.byID[id]
	if !ok {
		return models.Client{}, apperr.ErrNotFound
	}
	return c, nil
}

// List returns all clients sorted by name.
func (d *Directory) List() []models.Client {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.Client, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// OpenJournal returns the journal store for the given client, creating it
// from the client's seed entries on first access. Opening another client
// resets the previous store; its unseeded state is discarded.
func (d *Directory) OpenJournal(id string) (*journal.Store, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if d.active != nil && d.active.ClientID() == id {
		return d.active, nil
	}
	d.active = journal.NewStore(c, d.now)
	return d.active, nil
}
