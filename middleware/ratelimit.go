package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"checkout-service/clock"
	"checkout-service/models"
)

// RateLimiter counts requests per client key in fixed windows. Counting is
// guarded by a mutex so concurrent requests from the same key are atomic.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	period  time.Duration
	clock   clock.Clock
}

type window struct {
	start time.Time
	count int
}

// NewRateLimiter creates a limiter allowing max requests per period for
// each key.
func NewRateLimiter(max int, period time.Duration, clk clock.Clock) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		max:     max,
		period:  period,
		clock:   clk,
	}
}

// Allow reports whether a request for key fits in the current window.
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.clock.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.period {
		rl.windows[key] = &window{start: now, count: 1}
		rl.prune(now)
		return true
	}
	if w.count >= rl.max {
		return false
	}
	w.count++
	return true
}

// prune drops expired windows. Called with the lock held, on window
// rollover, so the map does not grow with one entry per client forever.
func (rl *RateLimiter) prune(now time.Time) {
	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.period {
			delete(rl.windows, key)
		}
	}
}

// Middleware rejects requests over the limit with a 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.MessageResponse{
				Success: false,
				Message: "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
