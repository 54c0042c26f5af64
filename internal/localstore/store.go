// Package localstore keeps the JSON blobs a browser would hold in
// localStorage. Keys are shared with the web client so both sides agree on
// where fallback data lives.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// MockTasksKey holds the sample tasks shown when the tasks table is empty or unreachable.
const MockTasksKey = "mockTasks"

// TaskSetupKey is where a user's collaboration steps for a task are kept.
func TaskSetupKey(taskID, userID string) string {
	return fmt.Sprintf("task-setup-%s-%s", taskID, userID)
}

var ErrNotFound = errors.New("key not found")

type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// GetJSON decodes the value stored at key into dst.
func (s *Store) GetJSON(ctx context.Context, key string, dst any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON stores v at key without expiry.
func (s *Store) SetJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
