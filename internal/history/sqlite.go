package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const historySlotID = 1

// SQLiteRepository stores the history list as a JSON payload in a one-row slot table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(connectionString string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS analysis_history (
		id INTEGER PRIMARY KEY,
		payload BLOB NOT NULL
	)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) LoadSlot(ctx context.Context) ([]Entry, error) {
	row := r.db.QueryRowContext(ctx, "SELECT payload FROM analysis_history WHERE id = ?", historySlotID)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Entry{}, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		// A corrupt slot yields an empty list rather than failing startup.
		return []Entry{}, nil
	}
	return entries, nil
}

func (r *SQLiteRepository) SaveSlot(ctx context.Context, entries []Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history entries: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO analysis_history (id, payload) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		historySlotID, payload)
	return err
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
