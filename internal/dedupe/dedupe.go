// Package dedupe tracks lead ids that have already been relayed so a repeated
// webhook delivery does not produce a second import email.
package dedupe

import (
	"context"
	"sync"
	"time"

	"adf-relay/internal/common/database"
)

// Set records seen lead ids. Add is an atomic insert-if-absent that reports
// whether the id was new; Remove releases an id whose lead failed downstream
// so a retry is not answered as a duplicate.
type Set interface {
	Add(ctx context.Context, id string) (bool, error)
	Remove(ctx context.Context, id string) error
}

// MemorySet is the default backing, scoped to the process lifetime.
type MemorySet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemorySet() *MemorySet {
	return &MemorySet{seen: make(map[string]struct{})}
}

func (s *MemorySet) Add(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[id]; ok {
		return false, nil
	}
	s.seen[id] = struct{}{}
	return true, nil
}

func (s *MemorySet) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.seen, id)
	return nil
}

// RedisSet backs the seen set with SETNX and a TTL so dedup survives restarts
// and is shared between replicas.
type RedisSet struct {
	client    *database.RedisClient
	keyPrefix string
	ttl       time.Duration
}

func NewRedisSet(client *database.RedisClient, keyPrefix string, ttl time.Duration) *RedisSet {
	return &RedisSet{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisSet) Add(ctx context.Context, id string) (bool, error) {
	return s.client.SetNX(ctx, s.keyPrefix+id, "1", s.ttl)
}

func (s *RedisSet) Remove(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.keyPrefix+id)
}
