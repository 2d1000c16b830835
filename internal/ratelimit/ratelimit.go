// Package ratelimit enforces a fixed per-client request quota.
package ratelimit

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter table; it is reset when exceeded.
const maxTrackedClients = 10000

// PerClient hands out one token bucket per client key.
type PerClient struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// PerMinute allows n requests per minute per client, all of which may be
// spent at once.
func PerMinute(n int) *PerClient {
	if n <= 0 {
		n = 1
	}
	return &PerClient{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(n)),
		burst:    n,
	}
}

// Allow reports whether key may make another request now.
func (p *PerClient) Allow(key string) bool {
	return p.get(key).Allow()
}

func (p *PerClient) get(key string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[key]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists = p.limiters[key]; exists {
		return limiter
	}

	if len(p.limiters) >= maxTrackedClients {
		p.limiters = make(map[string]*rate.Limiter)
	}

	limiter = rate.NewLimiter(p.limit, p.burst)
	p.limiters[key] = limiter
	return limiter
}

// Middleware rejects requests over the quota with 429, keyed by client IP.
func (p *PerClient) Middleware(message func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !p.Allow(ip) {
			slog.Warn("rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message(c)})
			return
		}
		c.Next()
	}
}
