// Package ratelimit implements fixed-window request limiting keyed by client
// address.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// windowState is the per-key counter of one fixed window.
type windowState struct {
	WindowStart time.Time
	Count       int
}

// Store holds per-key window state.
//
// Incr is the whole read-modify-write: it must reset an absent or elapsed
// window to a count of 1 or increment the live one, atomically, and return the
// resulting state. Implementations must be safe for concurrent use.
type Store interface {
	Incr(key string, now time.Time, window time.Duration) windowState
}

// MemoryStore is an in-memory Store with periodic eviction of windows that
// have long since elapsed.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]windowState
	window time.Duration
}

// NewMemoryStore creates a MemoryStore and starts its eviction goroutine,
// which runs until ctx is cancelled. window is the limiter's window duration;
// entries older than one full window are eligible for eviction.
func NewMemoryStore(ctx context.Context, window time.Duration) *MemoryStore {
	store := &MemoryStore{
		states: make(map[string]windowState),
		window: window,
	}

	go store.evictExpired(ctx, 5*time.Minute)

	return store
}

// Incr advances the window counter for key under a single lock acquisition.
func (s *MemoryStore) Incr(key string, now time.Time, window time.Duration) windowState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[key]
	if !ok || !now.Before(state.WindowStart.Add(window)) {
		state = windowState{WindowStart: now, Count: 1}
	} else {
		state.Count++
	}
	s.states[key] = state

	return state
}

// evictExpired periodically drops keys whose window has fully elapsed.
// Expired state is equivalent to no state, so dropping it never changes an
// admission decision.
func (s *MemoryStore) evictExpired(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-s.window)
			s.mu.Lock()
			for key, state := range s.states {
				if state.WindowStart.Before(threshold) {
					delete(s.states, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
