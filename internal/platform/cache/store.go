package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/platform/resilience"
)

var errNilLoader = errors.New("cache: loader is required")

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) live(now time.Time) bool {
	return e.expiresAt.IsZero() || now.Before(e.expiresAt)
}

// Store is a process-local TTL cache keyed by "<prefix>:<rest>" strings.
// Invalidate bumps a generation so a load that started before it never
// stores its result.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.RWMutex
	entries    map[string]entry
	generation uint64

	flight resilience.SingleFlight[any]
}

// NewStore returns a Store whose entries live for ttl. ttl <= 0 keeps them
// until the next invalidation.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (s *Store) lookup(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.live(s.now()) {
		return e.value, true
	}

	s.mu.Lock()
	if cur, ok := s.entries[key]; ok && !cur.live(s.now()) {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	return nil, false
}

func (s *Store) store(key string, value any, generation uint64) {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	if s.generation == generation {
		s.entries[key] = e
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key or runs loader once for all
// concurrent callers of the same key. Loader errors are not cached. An empty
// key bypasses the cache.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if v, ok := s.lookup(key); ok {
		return v, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		if v, ok := s.lookup(key); ok {
			return v, nil
		}

		s.mu.RLock()
		generation := s.generation
		s.mu.RUnlock()

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.store(key, loaded, generation)
		return loaded, nil
	})
	return v, err
}

// Invalidate drops every entry under the given prefixes and fences loads
// already in flight. No prefixes drops everything.
func (s *Store) Invalidate(_ context.Context, prefixes ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	dropped := 0
	for key := range s.entries {
		if len(prefixes) > 0 && !hasAnyPrefix(key, prefixes) {
			continue
		}
		delete(s.entries, key)
		dropped++
	}
	return dropped
}

// Len counts live entries.
func (s *Store) Len() int {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		if e.live(now) {
			n++
		}
	}
	return n
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
