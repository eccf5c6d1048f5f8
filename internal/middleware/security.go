package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/paddyguard/paddyguard-backend/pkg/clientip"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// --- Global per-IP rate limiting (1/s, burst 10) ---

const (
	globalRateLimitRPS    = 1
	globalRateLimitBurst  = 10
	globalLimiterTTL      = 30 * time.Minute
	globalCleanupInterval = 5 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

var (
	globalEntries    = make(map[string]*limiterEntry)
	globalEntriesMu  sync.Mutex
	globalCleanupRun bool
)

func getGlobalLimiter(ip string) *rate.Limiter {
	globalEntriesMu.Lock()
	defer globalEntriesMu.Unlock()
	startGlobalCleanupOnce()

	entry, ok := globalEntries[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(globalRateLimitRPS, globalRateLimitBurst)}
		globalEntries[ip] = entry
	}
	entry.lastUse = time.Now()
	return entry.limiter
}

func startGlobalCleanupOnce() {
	if globalCleanupRun {
		return
	}
	globalCleanupRun = true
	go func() {
		for range time.Tick(globalCleanupInterval) {
			globalEntriesMu.Lock()
			cutoff := time.Now().Add(-globalLimiterTTL)
			for ip, entry := range globalEntries {
				if entry.lastUse.Before(cutoff) {
					delete(globalEntries, ip)
				}
			}
			globalEntriesMu.Unlock()
		}
	}()
}

// GlobalRateLimit throttles all traffic per client IP.
func GlobalRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !getGlobalLimiter(clientip.FromRequest(r)).Allow() {
			writeJSONError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity is the middleware stack applied in production.
func ProductionSecurity() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		GlobalRateLimit,
	}
}
