package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestStore(t *testing.T, capacity int) *Store {
	t.Helper()
	store := NewStore(NewMemoryRepository(), capacity)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func entryWithID(id int64, score float64) Entry {
	return Entry{
		ID:            id,
		CreatedAt:     time.UnixMilli(id),
		Score:         score,
		SeverityLabel: "Mild",
		Thumbnail:     []byte{0x89},
	}
}

func TestStore_Append_CapsAtCapacityNewestFirst(t *testing.T) {
	store := newTestStore(t, 10)
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		store.Append(ctx, entryWithID(int64(i), float64(i)))
	}

	entries := store.Entries()
	if len(entries) != 10 {
		t.Fatalf("expected exactly 10 entries after 15 appends, got %d", len(entries))
	}
	for i, entry := range entries {
		wantID := int64(15 - i)
		if entry.ID != wantID {
			t.Errorf("entries[%d].ID = %d, want %d (newest first)", i, entry.ID, wantID)
		}
	}
}

func TestStore_Get(t *testing.T) {
	store := newTestStore(t, 10)
	ctx := context.Background()

	store.Append(ctx, entryWithID(42, 10))

	entry, ok := store.Get(42)
	if !ok {
		t.Fatalf("expected entry 42 to be present")
	}
	if entry.Score != 10 {
		t.Errorf("expected score 10, got %v", entry.Score)
	}

	if _, ok := store.Get(99); ok {
		t.Errorf("expected missing id to return false")
	}
}

func TestStore_Load_RoundTrip(t *testing.T) {
	repository := NewMemoryRepository()
	ctx := context.Background()

	first := NewStore(repository, 10)
	first.Append(ctx, entryWithID(1, 3))
	first.Append(ctx, entryWithID(2, 9))

	second := NewStore(repository, 10)
	second.Load(ctx)

	entries := second.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", len(entries))
	}
	if entries[0].ID != 2 || entries[1].ID != 1 {
		t.Errorf("expected newest-first order after reload, got %d, %d", entries[0].ID, entries[1].ID)
	}
}

func TestStore_Load_TruncatesOversizedSlot(t *testing.T) {
	repository := NewMemoryRepository()
	ctx := context.Background()

	oversized := make([]Entry, 14)
	for i := range oversized {
		oversized[i] = entryWithID(int64(100-i), 1)
	}
	if err := repository.SaveSlot(ctx, oversized); err != nil {
		t.Fatalf("SaveSlot error: %v", err)
	}

	store := NewStore(repository, 10)
	store.Load(ctx)

	if got := len(store.Entries()); got != 10 {
		t.Errorf("expected oversized slot to truncate to 10, got %d", got)
	}
}

type failingRepository struct {
	*MemoryRepository
	failSave bool
	failLoad bool
}

func (r *failingRepository) SaveSlot(ctx context.Context, entries []Entry) error {
	if r.failSave {
		return errors.New("quota exceeded")
	}
	return r.MemoryRepository.SaveSlot(ctx, entries)
}

func (r *failingRepository) LoadSlot(ctx context.Context) ([]Entry, error) {
	if r.failLoad {
		return nil, errors.New("backend unavailable")
	}
	return r.MemoryRepository.LoadSlot(ctx)
}

func TestStore_Append_PersistenceFailureIsNonFatal(t *testing.T) {
	repository := &failingRepository{MemoryRepository: NewMemoryRepository(), failSave: true}
	store := NewStore(repository, 10)
	ctx := context.Background()

	store.Append(ctx, entryWithID(1, 5))

	if got := len(store.Entries()); got != 1 {
		t.Fatalf("expected in-memory list to stay correct, got %d entries", got)
	}
}

func TestStore_Load_ReadFailureStartsEmpty(t *testing.T) {
	repository := &failingRepository{MemoryRepository: NewMemoryRepository(), failLoad: true}
	store := NewStore(repository, 10)

	store.Load(context.Background())

	if got := len(store.Entries()); got != 0 {
		t.Errorf("expected empty list on read failure, got %d", got)
	}
}

func TestStore_Subscribe_NotifiedOnAppend(t *testing.T) {
	store := newTestStore(t, 10)

	var notified [][]Entry
	store.Subscribe(func(entries []Entry) {
		notified = append(notified, entries)
	})

	store.Append(context.Background(), entryWithID(1, 2))
	store.Append(context.Background(), entryWithID(2, 4))

	if len(notified) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notified))
	}
	if len(notified[1]) != 2 || notified[1][0].ID != 2 {
		t.Errorf("expected latest snapshot in notification, got %+v", notified[1])
	}
}

func TestNewEntry_IdsIncrease(t *testing.T) {
	a := NewEntry(1, "Mild", nil)
	time.Sleep(2 * time.Millisecond)
	b := NewEntry(2, "Mild", nil)
	if b.ID <= a.ID {
		t.Errorf("expected ids to increase: %d then %d", a.ID, b.ID)
	}
}

func TestNewRepository_UnsupportedType(t *testing.T) {
	_, err := NewRepository("cassandra", "")
	if err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if want := fmt.Sprintf("unsupported history store type: %s", "cassandra"); err.Error() != want {
		t.Errorf("unexpected error message: %v", err)
	}
}
