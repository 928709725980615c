package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterStore holds one token bucket per client IP.
type limiterStore struct {
	entries sync.Map // map[string]*limiterEntry
	rps     float64
	burst   int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	mu       sync.Mutex
}

// ResetRateLimitMiddleware throttles the password reset request endpoint per
// client IP.
//
// The endpoint is unauthenticated, so without a limit it is a cheap vehicle
// for flooding a mailbox or probing the reset flow. Each IP gets an
// independent token bucket; c.ClientIP() resolves X-Forwarded-For and
// X-Real-IP before falling back to the connection address.
//
// Returns 429 with a Retry-After header when the bucket is empty.
func ResetRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &limiterStore{
		rps:   rps,
		burst: burst,
	}

	go store.evictStale(context.Background(), 5*time.Minute)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.get(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()

			logger.Debug("password reset rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many password reset requests from this IP. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// get returns the limiter for an IP, creating one on first sight.
func (s *limiterStore) get(ip string) *rate.Limiter {
	if val, ok := s.entries.Load(ip); ok {
		entry := val.(*limiterEntry)
		entry.mu.Lock()
		entry.lastSeen = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:  rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastSeen: time.Now(),
	}
	s.entries.Store(ip, entry)
	return entry.limiter
}

// evictStale drops buckets for IPs not seen in the last hour so the store
// does not grow without bound.
func (s *limiterStore) evictStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-1 * time.Hour)
			s.entries.Range(func(key, value any) bool {
				entry := value.(*limiterEntry)
				entry.mu.Lock()
				stale := entry.lastSeen.Before(threshold)
				entry.mu.Unlock()

				if stale {
					s.entries.Delete(key)
				}
				return true
			})
		}
	}
}
