package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/recetario/recetario/internal/auth"
	"github.com/recetario/recetario/internal/cache"
	"github.com/recetario/recetario/internal/metrics"
)

// Limiter checks token buckets. *cache.Cache satisfies it.
type Limiter interface {
	CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
	CheckUserRateLimit(ctx context.Context, userID string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for rate limiting middleware.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter Limiter
	Metrics metrics.Recorder
	Enabled bool

	// Per client IP, on every route.
	IPRate  int
	IPBurst int

	// Per authenticated user, on routes behind Authenticate.
	UserRate  int
	UserBurst int
}

// RateLimitIP limits requests per client IP. It expects chi's RealIP to
// have normalized RemoteAddr.
func RateLimitIP(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return rateLimit(cfg, "ip", func(r *http.Request) (string, bool) {
		return clientIP(r), true
	}, func(ctx context.Context, key string) (*cache.RateLimitResult, error) {
		return cfg.Limiter.CheckIPRateLimit(ctx, key, cfg.IPRate, cfg.IPBurst)
	})
}

// RateLimitUser limits requests per authenticated user. Anonymous requests
// pass through untouched, so it must run after Authenticate.
func RateLimitUser(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return rateLimit(cfg, "user", func(r *http.Request) (string, bool) {
		id := auth.UserIDFromContext(r.Context())
		return id, id != ""
	}, func(ctx context.Context, key string) (*cache.RateLimitResult, error) {
		return cfg.Limiter.CheckUserRateLimit(ctx, key, cfg.UserRate, cfg.UserBurst)
	})
}

func rateLimit(
	cfg RateLimitConfig,
	kind string,
	keyOf func(*http.Request) (string, bool),
	check func(context.Context, string) (*cache.RateLimitResult, error),
) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		if !cfg.Enabled || cfg.Limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := keyOf(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			result, err := check(r.Context(), key)
			if err != nil {
				// Fail open.
				cfg.Logger.Error("rate_limit_check_failed",
					slog.String("type", kind),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				recorder.IncRateLimited()
				retry := max(int(result.RetryAfter.Seconds()), 1)
				cfg.Logger.Warn("rate_limit_exceeded",
					slog.String("type", kind),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int("retry_after_seconds", retry),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, retry after "+strconv.Itoa(retry)+" seconds")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
