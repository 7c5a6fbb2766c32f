package middleware

import (
	"net/http"
	"sync"
	"time"

	"api/metrics"

	"github.com/gin-gonic/gin"
)

// Visitors idle longer than this are dropped from the table
const staleVisitorAge = 10 * time.Minute

// RateLimiter is a per-client token bucket over all API routes. It protects
// the server as a whole; the redis submission cooldown handles per-session
// abuse separately.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     int           // Tokens added per interval
	burst    int           // Bucket capacity
	interval time.Duration // Refill interval
}

type visitor struct {
	tokens      int
	lastUpdated time.Time
}

func NewRateLimiter(rate int, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    burst,
		interval: time.Minute,
	}
}

func (rl *RateLimiter) getVisitor(ip string) *visitor {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.visitors) > 1024 {
		rl.pruneLocked()
	}

	if v, exists := rl.visitors[ip]; exists {
		return v
	}

	v := &visitor{
		tokens:      rl.burst,
		lastUpdated: time.Now(),
	}
	rl.visitors[ip] = v
	return v
}

// pruneLocked drops visitors that have not been seen recently. Caller holds mu.
func (rl *RateLimiter) pruneLocked() {
	cutoff := time.Now().Add(-staleVisitorAge)
	for ip, v := range rl.visitors {
		if v.lastUpdated.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// Allow takes a token from the client's bucket, refilling it first based on
// the time elapsed since the last update
func (rl *RateLimiter) Allow(ip string) bool {
	v := rl.getVisitor(ip)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	refill := int(now.Sub(v.lastUpdated) / rl.interval)
	if refill > 0 {
		v.tokens += refill * rl.rate
		if v.tokens > rl.burst {
			v.tokens = rl.burst
		}
		v.lastUpdated = now
	}

	if v.tokens > 0 {
		v.tokens--
		return true
	}
	return false
}

// RateLimiterMiddleware rejects clients whose bucket is empty with a 429
func RateLimiterMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			metrics.RateLimiterRejections.WithLabelValues(ip).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
