package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ardacaliskaan/RaporServisi/internal/database"
)

// windowStore persists the per-key request timestamps the rate limiter
// evaluates. Entries returns timestamps at or after since, pruning older
// ones as a side effect.
type windowStore interface {
	Entries(ctx context.Context, key string, since time.Time) ([]time.Time, error)
	Append(ctx context.Context, key string, at time.Time) error
	Reset(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}

type memoryWindowStore struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

func newMemoryWindowStore() *memoryWindowStore {
	return &memoryWindowStore{windows: make(map[string][]time.Time)}
}

func (s *memoryWindowStore) Entries(_ context.Context, key string, since time.Time) ([]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.windows[key][:0]
	for _, at := range s.windows[key] {
		if !at.Before(since) {
			kept = append(kept, at)
		}
	}
	s.windows[key] = kept

	out := make([]time.Time, len(kept))
	copy(out, kept)
	return out, nil
}

func (s *memoryWindowStore) Append(_ context.Context, key string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[key] = append(s.windows[key], at)
	return nil
}

func (s *memoryWindowStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}

func (s *memoryWindowStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = make(map[string][]time.Time)
	return nil
}

func (s *memoryWindowStore) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.windows))
	for key := range s.windows {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// valkeyWindowStore keeps each window in a sorted set scored by unix
// seconds, so windows survive restarts and are shared across instances.
type valkeyWindowStore struct {
	cache database.CacheClient
}

const windowKeyRegistry = "ratelimit:keys"

func newValkeyWindowStore(cache database.CacheClient) *valkeyWindowStore {
	return &valkeyWindowStore{cache: cache}
}

func (s *valkeyWindowStore) windowKey(key string) string {
	return "ratelimit:window:" + key
}

func (s *valkeyWindowStore) Entries(ctx context.Context, key string, since time.Time) ([]time.Time, error) {
	wk := s.windowKey(key)

	trim := s.cache.B().Zremrangebyscore().Key(wk).
		Min("-inf").Max(fmt.Sprintf("(%d", since.Unix())).Build()
	if err := s.cache.Do(ctx, trim).Error(); err != nil {
		return nil, err
	}

	fetch := s.cache.B().Zrangebyscore().Key(wk).Min("-inf").Max("+inf").Build()
	members, err := s.cache.Do(ctx, fetch).AsStrSlice()
	if err != nil {
		return nil, err
	}

	entries := make([]time.Time, 0, len(members))
	for _, member := range members {
		nanos, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, time.Unix(0, nanos).UTC())
	}
	return entries, nil
}

func (s *valkeyWindowStore) Append(ctx context.Context, key string, at time.Time) error {
	add := s.cache.B().Zadd().Key(s.windowKey(key)).ScoreMember().
		ScoreMember(float64(at.Unix()), strconv.FormatInt(at.UnixNano(), 10)).Build()
	if err := s.cache.Do(ctx, add).Error(); err != nil {
		return err
	}

	register := s.cache.B().Sadd().Key(windowKeyRegistry).Member(key).Build()
	return s.cache.Do(ctx, register).Error()
}

func (s *valkeyWindowStore) Reset(ctx context.Context, key string) error {
	del := s.cache.B().Del().Key(s.windowKey(key)).Build()
	if err := s.cache.Do(ctx, del).Error(); err != nil {
		return err
	}

	unregister := s.cache.B().Srem().Key(windowKeyRegistry).Member(key).Build()
	return s.cache.Do(ctx, unregister).Error()
}

func (s *valkeyWindowStore) Clear(ctx context.Context) error {
	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.Reset(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (s *valkeyWindowStore) Keys(ctx context.Context) ([]string, error) {
	members := s.cache.B().Smembers().Key(windowKeyRegistry).Build()
	keys, err := s.cache.Do(ctx, members).AsStrSlice()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
