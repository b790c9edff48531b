package seatmap

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
)

// Scheduler coalesces repeated requests per key: each call cancels the pending
// run for that key and schedules fn after the quiet period.
type Scheduler interface {
	Debounce(key string, fn func())
	Stop()
}

// DebounceScheduler runs work on timer goroutines using bep/debounce.
type DebounceScheduler struct {
	after   time.Duration
	mu      sync.Mutex
	slots   map[string]func(func())
	stopped atomic.Bool
}

// NewDebounceScheduler builds a scheduler with the given quiet period.
func NewDebounceScheduler(after time.Duration) *DebounceScheduler {
	return &DebounceScheduler{
		after: after,
		slots: make(map[string]func(func())),
	}
}

// Debounce schedules fn under key, replacing any pending run.
func (s *DebounceScheduler) Debounce(key string, fn func()) {
	if s.stopped.Load() {
		return
	}
	s.mu.Lock()
	slot, ok := s.slots[key]
	if !ok {
		slot = debounce.New(s.after)
		s.slots[key] = slot
	}
	s.mu.Unlock()
	slot(func() {
		if s.stopped.Load() {
			return
		}
		fn()
	})
}

// Stop discards pending work. Later calls to Debounce are ignored.
func (s *DebounceScheduler) Stop() {
	s.stopped.Store(true)
}

// ManualScheduler records debounced work until Flush is called. It gives
// tests and single-threaded hosts explicit control over the quiet period.
type ManualScheduler struct {
	mu      sync.Mutex
	order   []string
	pending map[string]func()
	calls   int
}

// NewManualScheduler builds an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[string]func())}
}

// Debounce replaces the pending work for key.
func (s *ManualScheduler) Debounce(key string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if _, ok := s.pending[key]; !ok {
		s.order = append(s.order, key)
	}
	s.pending[key] = fn
}

// Flush runs all pending work in scheduling order and returns how many
// functions ran.
func (s *ManualScheduler) Flush() int {
	s.mu.Lock()
	order := s.order
	pending := s.pending
	s.order = nil
	s.pending = make(map[string]func())
	s.mu.Unlock()
	for _, key := range order {
		pending[key]()
	}
	return len(order)
}

// Pending reports how many keys have work waiting.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Calls reports how many Debounce calls were made.
func (s *ManualScheduler) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Stop discards pending work.
func (s *ManualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.pending = make(map[string]func())
}
