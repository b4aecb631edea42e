package middleware

import (
	"net/http"
	"sync"
	"time"
)

// clientWindow tracks one remote address inside the current fixed window.
type clientWindow struct {
	windowStart time.Time
	hits        int
}

// RateLimiter caps requests per remote address per fixed window. Used on the
// auth routes; counters live in memory, so limits are per process.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
	go rl.janitor()
	return rl
}

// janitor drops windows that expired without further traffic.
func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for now := range ticker.C {
		rl.mu.Lock()
		for addr, c := range rl.clients {
			if now.Sub(c.windowStart) > rl.window {
				delete(rl.clients, addr)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(addr string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[addr]
	if !ok || now.Sub(c.windowStart) > rl.window {
		rl.clients[addr] = &clientWindow{windowStart: now, hits: 1}
		return true
	}
	c.hits++
	return c.hits <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr, time.Now()) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
