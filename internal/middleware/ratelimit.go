package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paddyguard/paddyguard-backend/pkg/clientip"
)

const (
	// AuthRateLimitWindow is the fixed window for auth endpoints.
	AuthRateLimitWindow = 120 * time.Second
	// AuthRateLimitMaxRequests caps login/registration/recovery calls
	// per IP per window.
	AuthRateLimitMaxRequests = 25
	// authRateLimitKeyPrefix is the Redis key prefix for auth counters.
	authRateLimitKeyPrefix = "ratelimit:auth:"
)

// AuthRateLimit throttles authentication endpoints per client IP with a
// Redis fixed-window counter. Fails open when Redis is unreachable.
func AuthRateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := authRateLimitKeyPrefix + clientip.FromRequest(r)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(ctx, key, AuthRateLimitWindow)
			}

			if count > AuthRateLimitMaxRequests {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"success":false,"message":"Too many attempts. Please try again later.","retry_after":%d}`, int(AuthRateLimitWindow.Seconds()))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(AuthRateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(AuthRateLimitMaxRequests)-count, 10))

			next.ServeHTTP(w, r)
		})
	}
}
