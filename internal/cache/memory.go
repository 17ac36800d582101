// Package cache holds the two server-side cache tiers: an in-process data
// cache shared by the stores, and a Redis-backed response cache addressed by
// tags.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Clock returns the current time. Tests inject a fixed or advancing clock.
type Clock func() time.Time

// Store is the in-process cache contract the stores depend on.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(keys ...string)
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is a mutex-guarded map with absolute per-entry expiry.
type Memory struct {
	mu    sync.RWMutex
	items map[string]entry
	now   Clock
}

func NewMemory(now Clock) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{items: map[string]entry{}, now: now}
}

func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		if cur, still := m.items[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value for ttl. A non-positive ttl is a no-op.
func (m *Memory) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	m.mu.Lock()
	m.items[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

func (m *Memory) Delete(keys ...string) {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
}

// DeletePrefix removes every key starting with prefix.
func (m *Memory) DeletePrefix(prefix string) {
	m.mu.Lock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	m.mu.Unlock()
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Purge drops expired entries.
func (m *Memory) Purge() {
	now := m.now()
	m.mu.Lock()
	for k, e := range m.items {
		if !now.Before(e.expiresAt) {
			delete(m.items, k)
		}
	}
	m.mu.Unlock()
}

// RunJanitor purges expired entries every interval until ctx is done.
func (m *Memory) RunJanitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Purge()
		}
	}
}

// GetOrLoad returns the cached value for key or calls load and caches its
// result. Load errors are returned and nothing is cached.
func GetOrLoad[T any](ctx context.Context, s Store, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if v, ok := s.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	val, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	s.Set(key, val, ttl)
	return val, nil
}
