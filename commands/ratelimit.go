package commands

import (
	"sync"
	"time"
)

// RateLimiter controls the rate of command execution per user and command.
type RateLimiter struct {
	limits map[string]*userLimit
	mu     sync.Mutex

	max       int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// userLimit tracks rate limiting for a specific user
type userLimit struct {
	lastAccess time.Time
	count      int
}

// NewRateLimiter allows perWindow invocations of one command by one user per window.
// Zero values fall back to 15 per minute.
func NewRateLimiter(perWindow int, window time.Duration) *RateLimiter {
	if perWindow <= 0 {
		perWindow = 15
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limits: make(map[string]*userLimit),
		max:    perWindow,
		window: window,
		now:    time.Now,
	}
}

// Allow checks if a user is allowed to execute a command
// Returns true if allowed, false if rate limited
func (rl *RateLimiter) Allow(userID, command string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	key := userID + ":" + command
	now := rl.now()
	rl.sweep(now)

	limit, exists := rl.limits[key]
	if !exists {
		rl.limits[key] = &userLimit{
			lastAccess: now,
			count:      1,
		}
		return true
	}

	// Reset the counter once the window has passed
	if now.Sub(limit.lastAccess) >= rl.window {
		limit.lastAccess = now
		limit.count = 1
		return true
	}

	if limit.count >= rl.max {
		return false
	}

	limit.count++
	return true
}

// sweep drops expired entries, at most once per window.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for key, limit := range rl.limits {
		if now.Sub(limit.lastAccess) >= rl.window {
			delete(rl.limits, key)
		}
	}
}

// RetryAfter returns how long until the user can run the command again.
func (rl *RateLimiter) RetryAfter(userID, command string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, exists := rl.limits[userID+":"+command]
	if !exists {
		return 0
	}

	elapsed := rl.now().Sub(limit.lastAccess)
	if elapsed >= rl.window {
		return 0
	}
	return rl.window - elapsed
}
