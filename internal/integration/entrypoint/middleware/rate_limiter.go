// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/pocketledger/backend/internal/domain/error"
	"github.com/pocketledger/backend/internal/integration/entrypoint/dto"
)

const (
	defaultLimit  = 5
	defaultWindow = time.Minute
)

// RateLimiter throttles requests per client IP over a sliding window: a
// request is admitted while fewer than limit requests landed within the last
// window. Hits outside the window are pruned whenever their client is
// touched, so the hit log stays bounded by limit per active client.
type RateLimiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	limit   int
	window  time.Duration
	nowFunc func() time.Time
}

// NewRateLimiter creates a rate limiter with the default limit and window.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultLimit, defaultWindow)
}

// NewRateLimiterWithConfig creates a rate limiter admitting limit requests
// per client within each sliding window.
func NewRateLimiterWithConfig(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:    make(map[string][]time.Time),
		limit:   limit,
		window:  window,
		nowFunc: time.Now,
	}
}

// Middleware returns a Gin handler enforcing the limit per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		client := c.ClientIP()
		if client == "" {
			client = c.Request.RemoteAddr
		}

		if !rl.take(client) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// take records a hit for client and reports whether it fit in the window.
func (rl *RateLimiter) take(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.nowFunc().Add(-rl.window)
	recent := rl.hits[client][:0]
	for _, hit := range rl.hits[client] {
		if hit.After(cutoff) {
			recent = append(recent, hit)
		}
	}

	if len(recent) >= rl.limit {
		rl.hits[client] = recent
		return false
	}
	rl.hits[client] = append(recent, rl.nowFunc())
	return true
}
