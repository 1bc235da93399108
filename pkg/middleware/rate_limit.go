package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/globalsolutions/website/backend/pkg/metrics"
	"golang.org/x/time/rate"
)

// memoryLimiter is a per-key token bucket store. One instance per
// middleware so separately mounted limiters do not share buckets.
type memoryLimiter struct {
	buckets sync.Map // map[string]*rate.Limiter
	rps     float64
	burst   int
}

func (m *memoryLimiter) get(key string) *rate.Limiter {
	if v, ok := m.buckets.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := m.buckets.LoadOrStore(key, rate.NewLimiter(rate.Limit(m.rps), m.burst))
	return v.(*rate.Limiter)
}

// limiterKey prefers the authenticated subject and falls back to the client IP.
func limiterKey(c *gin.Context) string {
	if v, ok := c.Get(ClaimsKey); ok {
		if cm, ok2 := v.(map[string]interface{}); ok2 {
			if sub, ok3 := cm["sub"].(string); ok3 && sub != "" {
				return "sub:" + sub
			}
		}
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

func rejectRateLimited(c *gin.Context, limiter, retryAfter string) {
	c.Header("Retry-After", retryAfter)
	metrics.RateLimitRejected.WithLabelValues(limiter).Inc()
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
}

// RateLimitMiddleware returns a Gin middleware enforcing a token-bucket per-key limit.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	ml := &memoryLimiter{rps: rps, burst: burst}
	return func(c *gin.Context) {
		if !ml.get(limiterKey(c)).Allow() {
			rejectRateLimited(c, "memory", "1")
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
