// Package session keeps per-identity conversation state in memory. State is
// lost on restart.
package session

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type entry[T any] struct {
	value   T
	touched time.Time
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

type Store[T any] struct {
	mu      sync.RWMutex
	entries map[int64]entry[T]

	locksMu sync.Mutex
	locks   map[int64]*keyLock

	gauge   prometheus.Gauge
	timeNow func() time.Time
}

// NewStore creates an empty store. gauge may be nil; when set it tracks the
// number of stored sessions.
func NewStore[T any](gauge prometheus.Gauge) *Store[T] {
	return &Store[T]{
		entries: make(map[int64]entry[T]),
		locks:   make(map[int64]*keyLock),
		gauge:   gauge,
		timeNow: time.Now,
	}
}

func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e.value, ok
}

func (s *Store[T]) Put(id int64, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry[T]{value: value, touched: s.timeNow()}
	s.report()
}

func (s *Store[T]) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	s.report()
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Lock serializes work on one identity. The returned func releases it.
func (s *Store[T]) Lock(id int64) (unlock func()) {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &keyLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			s.locksMu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(s.locks, id)
			}
			s.locksMu.Unlock()
		})
	}
}

// Sweep drops sessions untouched for longer than maxIdle, skipping identities
// whose events are being handled. It returns the number removed.
func (s *Store[T]) Sweep(maxIdle time.Duration) int {
	cutoff := s.timeNow().Add(-maxIdle)

	s.locksMu.Lock()
	busy := make(map[int64]struct{}, len(s.locks))
	for id := range s.locks {
		busy[id] = struct{}{}
	}
	s.locksMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		if _, held := busy[id]; held {
			continue
		}
		if e.touched.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	s.report()
	return removed
}

func (s *Store[T]) report() {
	if s.gauge != nil {
		s.gauge.Set(float64(len(s.entries)))
	}
}
