package store

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries caps how many counters a WindowMemoryStore keeps unless
// configured otherwise.
const DefaultMaxEntries = 10000

// windowRecord holds one counter together with its window deadline. Keeping
// both in a single record means a reader can never observe a count without
// its deadline.
type windowRecord struct {
	count   int64
	resetAt time.Time
}

// WindowMemoryStore is an in-memory fixed-window implementation of
// ratelimit.Store. Expiry is lazy: a lapsed record is replaced the next time
// its key records a request, not by a background sweep.
type WindowMemoryStore struct {
	mu         sync.Mutex
	records    map[string]windowRecord
	maxEntries int
}

// Option configures a WindowMemoryStore.
type Option func(*WindowMemoryStore)

// WithMaxEntries caps the number of counters the store keeps. Zero disables
// the cap.
func WithMaxEntries(n int) Option {
	return func(s *WindowMemoryStore) {
		s.maxEntries = n
	}
}

// NewWindowMemoryStore creates a new in-memory fixed-window store.
func NewWindowMemoryStore(opts ...Option) *WindowMemoryStore {
	s := &WindowMemoryStore{
		records:    make(map[string]windowRecord),
		maxEntries: DefaultMaxEntries,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *WindowMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	rec, ok := s.records[key]
	if !ok || now.After(rec.resetAt) {
		if !ok {
			s.evictIfFull(now)
		}

		rec = windowRecord{count: 1, resetAt: now.Add(window)}
		s.records[key] = rec

		return rec.count, rec.resetAt, nil
	}

	// The deadline was fixed when the window opened; later hits only count.
	rec.count++
	s.records[key] = rec

	return rec.count, rec.resetAt, nil
}

func (s *WindowMemoryStore) Peek(_ context.Context, key string) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return 0, time.Time{}, nil
	}

	return rec.count, rec.resetAt, nil
}

// evictIfFull makes room for one more record once the cap is reached.
// Lapsed records go first; if all records are live, the one whose window
// ends soonest is dropped, forgetting that client's count.
func (s *WindowMemoryStore) evictIfFull(now time.Time) {
	if s.maxEntries <= 0 || len(s.records) < s.maxEntries {
		return
	}

	for key, rec := range s.records {
		if now.After(rec.resetAt) {
			delete(s.records, key)
		}
	}

	if len(s.records) < s.maxEntries {
		return
	}

	var (
		victim   string
		earliest time.Time
	)

	for key, rec := range s.records {
		if victim == "" || rec.resetAt.Before(earliest) {
			victim = key
			earliest = rec.resetAt
		}
	}

	if victim != "" {
		delete(s.records, victim)
	}
}
