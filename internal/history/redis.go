package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const historySlotKey = "woundcare:analysis-history"

// RedisRepository stores the history list as a JSON payload under a single key.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(addr string) (*RedisRepository, error) {
	options, err := redis.ParseURL(addr)
	if err != nil {
		// Accept plain host:port as well as redis:// URLs.
		options = &redis.Options{Addr: addr}
	}
	return &RedisRepository{client: redis.NewClient(options)}, nil
}

func (r *RedisRepository) LoadSlot(ctx context.Context) ([]Entry, error) {
	payload, err := r.client.Get(ctx, historySlotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read history slot: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return []Entry{}, nil
	}
	return entries, nil
}

func (r *RedisRepository) SaveSlot(ctx context.Context, entries []Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history entries: %w", err)
	}
	return r.client.Set(ctx, historySlotKey, payload, 0).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
