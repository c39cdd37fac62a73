package middleware

import (
	"sync"
	"time"
)

// Per-IP fixed-window limiter applied ONLY to invalid token attempts on the
// submission endpoints. Valid requests are never counted.
type InvalidAuthRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*ipWindow

	limit  int
	window time.Duration
}

type ipWindow struct {
	count    int
	openedAt time.Time
}

// NewInvalidAuthRateLimiter allows 5 invalid attempts per minute per IP.
func NewInvalidAuthRateLimiter() *InvalidAuthRateLimiter {
	rl := &InvalidAuthRateLimiter{
		windows: make(map[string]*ipWindow),
		limit:   5,
		window:  time.Minute,
	}
	go rl.sweep()
	return rl
}

// Allow records one invalid attempt from ip and reports whether it is still
// within the window limit.
func (r *InvalidAuthRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	w := r.windows[ip]
	if w == nil || now.Sub(w.openedAt) > r.window {
		r.windows[ip] = &ipWindow{count: 1, openedAt: now}
		return true
	}

	if w.count >= r.limit {
		return false
	}
	w.count++
	return true
}

// sweep drops expired windows so idle IPs do not accumulate.
func (r *InvalidAuthRateLimiter) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, w := range r.windows {
			if now.Sub(w.openedAt) > r.window {
				delete(r.windows, ip)
			}
		}
		r.mu.Unlock()
	}
}
