package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	pkgerrors "graphd/pkg/errors"
)

// ErrorResponder writes an error response
type ErrorResponder interface {
	Handle(w http.ResponseWriter, r *http.Request, err error)
}

// IPRateLimiter keeps one token bucket per client address
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows rps requests per second per client with the given burst
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
}

// Allow reports whether the client identified by key may proceed
func (l *IPRateLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.limiters[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = c
		if len(l.limiters)%1024 == 0 {
			l.evictIdle(now)
		}
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) evictIdle(now time.Time) {
	for key, c := range l.limiters {
		if now.Sub(c.lastSeen) > l.idleTTL {
			delete(l.limiters, key)
		}
	}
}

// RateLimit rejects requests over the per-client budget with 429. It expects
// RealIP to have run so RemoteAddr is the client address.
func RateLimit(limiter *IPRateLimiter, responder ErrorResponder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				w.Header().Set("Retry-After", "1")
				responder.Handle(w, r, pkgerrors.NewRateLimitError(float64(limiter.limit), limiter.burst))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
