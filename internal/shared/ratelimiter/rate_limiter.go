// Package ratelimiter limits how often token-sending endpoints may be called
// from a single source.
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// window tracks the call count of one key inside the current interval.
type window struct {
	count     int
	lastReset time.Time
}

// Limiter is a fixed-window rate limiter keyed by an arbitrary string
// (typically the client IP). It is safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	limit    int           // allowed calls per interval
	interval time.Duration // window length
	windows  map[string]*window
}

// NewLimiter creates a new Limiter allowing limit calls per interval and key.
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allow reports whether another call for key fits in the current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.lastReset) >= l.interval {
		l.windows[key] = &window{count: 1, lastReset: now}
		return true
	}

	w.count++
	return w.count <= l.limit
}

// Middleware returns a Gin middleware that rejects requests over the limit
// with 429, keyed by client IP.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
