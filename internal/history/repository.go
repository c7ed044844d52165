package history

import (
	"context"
	"fmt"
	"log"
)

// Repository persists the full history list as a single named slot. Reads and writes
// always cover the whole list so an append is one atomic slot replacement.
type Repository interface {
	// LoadSlot returns the persisted list. An absent slot yields an empty list.
	LoadSlot(ctx context.Context) ([]Entry, error)
	// SaveSlot replaces the persisted list in one write.
	SaveSlot(ctx context.Context, entries []Entry) error
	Close() error
}

// NewRepository builds a repository for the configured backend.
func NewRepository(repositoryType, connectionString string) (Repository, error) {
	var repository Repository
	var err error

	switch repositoryType {
	case "sqlite":
		repository, err = NewSQLiteRepository(connectionString)
	case "redis":
		repository, err = NewRedisRepository(connectionString)
	case "memory":
		repository = NewMemoryRepository()
	default:
		return nil, fmt.Errorf("unsupported history store type: %s", repositoryType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s history store: %w", repositoryType, err)
	}

	log.Printf("history store initialized (type=%s)", repositoryType)
	return repository, nil
}
