// internal/repository/rediskv/kv_repo.go
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"msm-console/internal/repository"

	"github.com/redis/go-redis/v9"
)

// Backend stores workspace keys as plain redis strings under
// console:ws:<workspace>:<key>. A non-zero ttl is refreshed on every write so
// abandoned workspaces age out.
type Backend struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBackend(client *redis.Client, ttl time.Duration) *Backend {
	return &Backend{client: client, ttl: ttl}
}

func (b *Backend) Scope(workspaceID string) repository.LocalStore {
	return &store{client: b.client, ttl: b.ttl, workspace: workspaceID}
}

func (b *Backend) Close() error {
	return b.client.Close()
}

type store struct {
	client    *redis.Client
	ttl       time.Duration
	workspace string
}

func (s *store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}
	return v, true, nil
}

func (s *store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s in redis: %w", key, err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.key(k))
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys from redis: %w", err)
	}
	return nil
}

func (s *store) key(k string) string {
	return fmt.Sprintf("console:ws:%s:%s", s.workspace, k)
}
