package history

import (
	"context"
	"sync"
)

// MemoryRepository keeps the slot in process memory. Used in tests and as the
// best-effort fallback when no persistent backend is configured.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) LoadSlot(ctx context.Context) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]Entry, len(r.entries))
	copy(copied, r.entries)
	return copied, nil
}

func (r *MemoryRepository) SaveSlot(ctx context.Context, entries []Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make([]Entry, len(entries))
	copy(r.entries, entries)
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
