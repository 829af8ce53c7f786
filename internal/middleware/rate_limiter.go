package middleware

import (
	"sync"
	"time"

	"multibank/internal/errors"
	"multibank/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// 5 req/sec keeps password guessing and refresh hammering in check
	defaultRequestsPerSecond = 5
	defaultBurstSize         = 10

	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

// limiterStore tracks one token bucket per client IP and evicts buckets
// for clients that went quiet
type limiterStore struct {
	mu       sync.Mutex
	visitors map[string]*visitorEntry
	rps      rate.Limit
	burst    int
}

type visitorEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(rps, burst int) *limiterStore {
	s := &limiterStore{
		visitors: make(map[string]*visitorEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go s.evictLoop()
	return s
}

func (s *limiterStore) allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visitors[ip]
	if !ok {
		v = &visitorEntry{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (s *limiterStore) evictLoop() {
	for range time.Tick(cleanupInterval) {
		s.mu.Lock()
		for ip, v := range s.visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(s.visitors, ip)
			}
		}
		s.mu.Unlock()
	}
}

// RateLimiter creates a per-IP rate limiting middleware with default limits
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(defaultRequestsPerSecond, defaultBurstSize)
}

// RateLimiterWithConfig creates a per-IP rate limiting middleware with the
// given requests-per-second and burst allowance
func RateLimiterWithConfig(rps, burst int) echo.MiddlewareFunc {
	store := newLimiterStore(rps, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !store.allow(clientIP(c)) {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

// clientIP prefers proxy-supplied headers over the socket address
func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}
