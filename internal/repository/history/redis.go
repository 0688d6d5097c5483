package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
)

// historyKey is the Redis list holding serialized history entries,
// newest at the head.
const historyKey = "hotelsearch:history"

// RedisConfig holds connection parameters for a Redis history store.
type RedisConfig struct {
	Addrs    []string
	Password string
	Capacity int
}

// RedisStore persists search history in a capped Redis list.
type RedisStore struct {
	client   rueidis.Client
	capacity int
}

// NewRedisStore creates a Redis-backed history store via rueidis.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &RedisStore{client: client, capacity: cfg.Capacity}, nil
}

// Append pushes an entry to the head of the list and trims it to capacity.
func (s *RedisStore) Append(ctx context.Context, entry domain.HistoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	cmd := s.client.B().Lpush().Key(historyKey).Element(string(data)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("%w: lpush: %v", domain.ErrHistoryUnavailable, err)
	}

	trim := s.client.B().Ltrim().Key(historyKey).Start(0).Stop(int64(s.capacity - 1)).Build()
	if err := s.client.Do(ctx, trim).Error(); err != nil {
		return fmt.Errorf("%w: ltrim: %v", domain.ErrHistoryUnavailable, err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *RedisStore) Recent(ctx context.Context, n int) ([]domain.HistoryEntry, error) {
	if n <= 0 {
		return []domain.HistoryEntry{}, nil
	}

	cmd := s.client.B().Lrange().Key(historyKey).Start(0).Stop(int64(n - 1)).Build()
	raw, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("%w: lrange: %v", domain.ErrHistoryUnavailable, err)
	}

	entries := make([]domain.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// Skip malformed entries instead of failing the read.
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	cmd := s.client.B().Llen().Key(historyKey).Build()
	count, err := s.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("%w: llen: %v", domain.ErrHistoryUnavailable, err)
	}
	return count, nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *RedisStore) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for history store: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Close shuts down the client.
func (s *RedisStore) Close() {
	s.client.Close()
}
