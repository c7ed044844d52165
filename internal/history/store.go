package history

import (
	"context"
	"log/slog"
	"sync"
)

// Store is the bounded analysis-history list: newest first, at most capacity entries,
// appending evicts the oldest. The in-memory list is authoritative; a failed slot
// write is logged and the session continues with the in-memory state.
type Store struct {
	mu         sync.Mutex
	repository Repository
	capacity   int
	entries    []Entry
	listeners  []func([]Entry)
}

func NewStore(repository Repository, capacity int) *Store {
	return &Store{
		repository: repository,
		capacity:   capacity,
	}
}

// Load reads the persisted slot. An absent or corrupt slot yields an empty list; a
// backend read failure is non-fatal and also starts the session empty.
func (s *Store) Load(ctx context.Context) {
	entries, err := s.repository.LoadSlot(ctx)
	if err != nil {
		slog.Warn("Load: failed to read history slot; starting empty", "error", err)
		entries = []Entry{}
	}
	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	slog.Info("Load: history loaded", "entries", len(entries))
}

// Append inserts an entry at the front, truncates to capacity and persists the whole
// list in one slot write. Append never fails; persistence problems are logged only.
func (s *Store) Append(ctx context.Context, entry Entry) {
	s.mu.Lock()
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.repository.SaveSlot(ctx, snapshot); err != nil {
		slog.Warn("Append: failed to persist history slot; keeping in-memory list",
			"error", err, "entries", len(snapshot))
	}

	s.notify(snapshot)
}

// Get returns the entry with the given id, or false when it has been evicted.
func (s *Store) Get(id int64) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the current list, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a listener invoked with the updated list after every append.
func (s *Store) Subscribe(listener func([]Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *Store) Close() error {
	return s.repository.Close()
}

func (s *Store) snapshotLocked() []Entry {
	snapshot := make([]Entry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot
}

func (s *Store) notify(entries []Entry) {
	s.mu.Lock()
	listeners := make([]func([]Entry), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(entries)
	}
}
