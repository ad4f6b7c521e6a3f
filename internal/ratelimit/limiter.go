package ratelimit

import (
	"math"
	"time"

	apperrors "github.com/syter/media/internal/errors"
)

// Limiter admits or rejects requests per key using a fixed-window counter.
//
// The externally documented limit and the internal comparison threshold differ
// by exactly one: the first request of a window starts the counter at 1, so the
// threshold carries a one-unit warm-up offset to let the advertised number of
// requests through.
type Limiter struct {
	store     Store
	limit     int
	threshold int
	window    time.Duration
}

// NewLimiter creates a Limiter admitting limit requests per window per key.
func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:     store,
		limit:     limit,
		threshold: limit + 1,
		window:    window,
	}
}

// Allow decides whether the request identified by key is admitted at time now.
//
// The store atomically resets a missing or elapsed window to a count of 1 or
// increments the live one; the resulting count is compared against the
// threshold, so even the first request of a window is rejected at limit 0. On
// rejection the returned error is a RateLimitedError carrying the advertised
// limit, zero remaining quota, and the seconds until the window rolls over.
func (l *Limiter) Allow(key string, now time.Time) error {
	state := l.store.Incr(key, now, l.window)

	if state.Count >= l.threshold {
		retryAfter := state.WindowStart.Add(l.window).Sub(now)
		return &apperrors.RateLimitedError{
			Limit:             l.limit,
			Remaining:         0,
			RetryAfterSeconds: int(math.Ceil(retryAfter.Seconds())),
		}
	}

	return nil
}

// Limit returns the advertised per-window request limit.
func (l *Limiter) Limit() int {
	return l.limit
}
