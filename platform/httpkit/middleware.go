// Package httpkit provides HTTP middleware infrastructure.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"aptivai_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	msgRateLimited = "rate limit exceeded"

	// defaultLimiterIdleTTL is how long an idle client keeps its limiter.
	defaultLimiterIdleTTL = 10 * time.Minute
)

// RequestLogger logs HTTP requests with timing.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		clientIP := c.ClientIP()
		for _, ginErr := range c.Errors {
			log.HTTPError(c.Request.Method, path, status, ginErr.Err, clientIP)
		}
		log.HTTPRequest(c.Request.Method, path, status, float64(time.Since(start).Milliseconds()), clientIP)
	}
}

// SecurityHeaders sets the headers every JSON API response carries.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		h.Set("Cache-Control", "no-store")
		if c.Request.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Buckets of clients that
// stay idle longer than the idle TTL are dropped.
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	log       *logger.Logger
}

// NewIPRateLimiter creates a limiter allowing r requests per second per IP with the given burst.
func NewIPRateLimiter(r rate.Limit, burst int, log *logger.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rate:      r,
		burst:     burst,
		idleTTL:   defaultLimiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
		log:       log,
	}
}

// NewAuthRateLimiter limits authentication endpoints to 5 requests per minute per IP.
func NewAuthRateLimiter(log *logger.Logger) *AuthRateLimiter {
	return &AuthRateLimiter{IPRateLimiter: NewIPRateLimiter(rate.Limit(5.0/60.0), 5, log)}
}

// AuthRateLimiter is the stricter limiter mounted on auth routes.
type AuthRateLimiter struct {
	*IPRateLimiter
}

// NewAgentRateLimiter limits LLM-backed endpoints to 20 requests per minute per IP.
func NewAgentRateLimiter(log *logger.Logger) *IPRateLimiter {
	return NewIPRateLimiter(rate.Limit(20.0/60.0), 5, log)
}

func (i *IPRateLimiter) allow(ip string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= i.idleTTL {
		for key, entry := range i.limiters {
			if now.Sub(entry.lastSeen) >= i.idleTTL {
				delete(i.limiters, key)
			}
		}
		i.lastSweep = now
	}

	entry, ok := i.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// tracked reports how many client buckets are held.
func (i *IPRateLimiter) tracked() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.limiters)
}

// retryAfter is the whole number of seconds until one request is allowed again.
func (i *IPRateLimiter) retryAfter() int {
	if i.rate <= 0 || i.rate == rate.Inf {
		return 1
	}
	return int(math.Ceil(1 / float64(i.rate)))
}

// RateLimit returns a middleware that rejects requests over the per-IP limit with 429.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if i.allow(ip) {
			c.Next()
			return
		}

		if i.log != nil {
			i.log.RateLimitExceeded(ip, c.Request.URL.Path)
		}
		c.Header("Retry-After", strconv.Itoa(i.retryAfter()))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: msgRateLimited})
	}
}
