package security

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter implements a simple fixed-window token bucket per key
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     int           // requests per window
	window   time.Duration // time window
	now      func() time.Time
	stop     chan struct{}
}

type visitor struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a new rate limiter allowing rate requests per window
// for each key. Call Close to stop the background cleanup.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.cleanupVisitors()
	return rl
}

// Allow consumes a token for key and reports whether the request may proceed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[key]
	if !exists || now.Sub(v.lastRefill) >= rl.window {
		v = &visitor{tokens: rl.rate, lastRefill: now}
		rl.visitors[key] = v
	}

	if v.tokens > 0 {
		v.tokens--
		return true
	}
	return false
}

// Close stops the cleanup goroutine
func (rl *RateLimiter) Close() {
	close(rl.stop)
}

// cleanupVisitors removes idle entries so the map does not grow forever
func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, v := range rl.visitors {
				if now.Sub(v.lastRefill) > rl.window*2 {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// GetClientIP extracts the client IP from the request
func GetClientIP(r *http.Request) string {
	// Behind a proxy the first X-Forwarded-For entry is the client
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
