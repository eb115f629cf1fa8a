package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimit defines limits for an endpoint pattern.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// RateLimiter applies per-IP token-bucket limits to matching endpoints.
// State is in-memory; both services run as single instances, so there is
// nothing to share.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limits  map[string]RateLimit
	logger  zerolog.Logger
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter with the given endpoint limits.
// Keys are "METHOD /path" prefixes.
func NewRateLimiter(limits map[string]RateLimit, logger zerolog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limits:  limits,
		logger:  logger,
	}
	go rl.evictLoop()
	return rl
}

// HashLimits are the issuance endpoint limits.
func HashLimits() map[string]RateLimit {
	return map[string]RateLimit{
		"POST /generate-hash": {60, time.Minute},
	}
}

// DashboardLimits are the dashboard endpoint limits. The relay endpoint
// is the only one that writes upstream, so it gets the tightest budget.
func DashboardLimits() map[string]RateLimit {
	return map[string]RateLimit{
		"POST /chatters/":    {30, time.Minute},
		"POST /alerts/reset": {10, time.Minute},
		"GET /chatters":      {120, time.Minute},
		"GET /alerts":        {120, time.Minute},
		"GET /stats":         {120, time.Minute},
	}
}

// RealIP extracts the client IP from proxy headers or the connection.
func RealIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Middleware returns the rate limiting middleware.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, pattern := rl.findLimit(r)
		if limit == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip := RealIP(r)
		lim := rl.limiterFor(pattern+":"+ip, *limit)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Requests))

		if !lim.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(int(limit.Window.Seconds())))
			rl.logger.Warn().
				Str("ip", ip).
				Str("endpoint", r.URL.Path).
				Msg("rate limit exceeded")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// findLimit finds the matching rate limit for a request.
func (rl *RateLimiter) findLimit(r *http.Request) (*RateLimit, string) {
	key := r.Method + " " + r.URL.Path
	for pattern, limit := range rl.limits {
		if strings.HasPrefix(key, pattern) {
			l := limit
			return &l, pattern
		}
	}
	return nil, ""
}

func (rl *RateLimiter) limiterFor(key string, limit RateLimit) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(
			rate.Every(limit.Window/time.Duration(limit.Requests)),
			limit.Requests,
		)}
		rl.buckets[key] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

// evictLoop drops buckets idle for over an hour so the map cannot grow
// unbounded.
func (rl *RateLimiter) evictLoop() {
	for range time.Tick(10 * time.Minute) {
		cutoff := time.Now().Add(-time.Hour)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}
