package history

import "time"

// Entry is one persisted analysis summary. Entries are immutable after creation and
// leave the store only through capacity eviction.
type Entry struct {
	ID            int64     `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	Thumbnail     []byte    `json:"thumbnail"` // PNG image data
	Score         float64   `json:"score"`
	SeverityLabel string    `json:"severityLabel"`
}

// NewEntry builds an entry stamped with the current wall clock. The unix-millisecond
// id is monotonically increasing for practical purposes within a session.
func NewEntry(score float64, severityLabel string, thumbnail []byte) Entry {
	now := time.Now()
	return Entry{
		ID:            now.UnixMilli(),
		CreatedAt:     now,
		Thumbnail:     thumbnail,
		Score:         score,
		SeverityLabel: severityLabel,
	}
}
