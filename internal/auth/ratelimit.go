package auth

import (
	"math"
	"sync"
	"time"
)

// RateLimiter is a process-local sliding lockout counter keyed by
// normalized email. It is deliberately not durable: a restart resets all
// lockouts, trading strictness for availability. In a horizontally
// scaled deployment each instance limits independently; swapping this
// for a shared store only requires another implementation behind the
// same three methods.
type RateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rateLimitEntry
	maxAttempts int
	lockout     time.Duration

	// now is swappable so tests can step through the lockout window.
	now func() time.Time
}

type rateLimitEntry struct {
	count        int
	blockedUntil time.Time
}

func NewRateLimiter(maxAttempts int, lockout time.Duration) *RateLimiter {
	return &RateLimiter{
		entries:     make(map[string]*rateLimitEntry),
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

// Check reports whether the key is currently locked out, and if so the
// advisory number of seconds until the lockout expires.
func (rl *RateLimiter) Check(key string) (blocked bool, retryAfter int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.entries[key]
	if !ok {
		return false, 0
	}
	remaining := entry.blockedUntil.Sub(rl.now())
	if remaining <= 0 {
		return false, 0
	}
	return true, int(math.Ceil(remaining.Seconds()))
}

// RecordFailure counts a failed attempt; reaching the threshold starts
// the lockout window. Increment happens under the lock so two
// simultaneous failures for the same key cannot under-count.
func (rl *RateLimiter) RecordFailure(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.entries[key]
	if !ok {
		entry = &rateLimitEntry{}
		rl.entries[key] = entry
	}
	entry.count++
	if entry.count >= rl.maxAttempts {
		entry.blockedUntil = rl.now().Add(rl.lockout)
	}
}

// Clear drops the key's entire history, not just the lockout flag. A
// successful authentication starts the caller from a clean slate.
func (rl *RateLimiter) Clear(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.entries, key)
}
