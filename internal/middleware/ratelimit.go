package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"lifetrack/internal/cache"
	apperrors "lifetrack/internal/errors"
	"lifetrack/internal/metrics"
)

const (
	limiterCacheSize = 10000
	limiterIdleTTL   = 10 * time.Minute
)

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters *cache.LRU[*rate.Limiter]
	rps      rate.Limit
	burst    int
}

// NewIPRateLimiter creates a limiter allowing rps requests per second with the
// given burst for each client IP.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: cache.NewIdleLRU[*rate.Limiter](limiterCacheSize, limiterIdleTTL),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters.Set(ip, limiter)
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			metrics.AuthRejections.WithLabelValues("rate_limited").Inc()
			c.Header("Retry-After", "1")
			abortWithAppError(c, apperrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}
