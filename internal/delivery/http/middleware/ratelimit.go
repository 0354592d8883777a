package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	h "invento/internal/delivery/http/helpers"
)

// RateLimiter throttles requests per client IP with a token bucket per client.
type RateLimiter struct {
	limit       rate.Limit
	burst       int
	trustedHops int
	idleTTL     time.Duration
	now         func() time.Time

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perSecond sustained requests with the given burst per client.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// TrustProxyHops makes the limiter key on X-Forwarded-For when n reverse proxies that
// append to the header sit in front of the server. Zero keys on the socket peer only.
func (l *RateLimiter) TrustProxyHops(n int) *RateLimiter {
	l.trustedHops = max(n, 0)
	return l
}

// Allow reports whether the client identified by key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) > l.idleTTL {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > l.idleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Wrap returns next guarded by the limiter. Throttled requests get 429.
func (l *RateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r, l.trustedHops)) {
			w.Header().Set("Retry-After", "1")
			h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrNameRateLimit, "too many requests, please slow down")
			return
		}
		next(w, r)
	}
}

// clientIP returns the address the nearest trusted proxy saw. Each of the hops proxies
// appends its peer to X-Forwarded-For, so the client is hops entries from the right and
// anything further left is caller-supplied.
func clientIP(r *http.Request, hops int) string {
	if hops > 0 {
		var entries []string
		for _, v := range r.Header.Values("X-Forwarded-For") {
			entries = append(entries, strings.Split(v, ",")...)
		}
		if i := len(entries) - hops; i >= 0 {
			if ip := strings.TrimSpace(entries[i]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
