package api

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/accsetupsviewer/server/internal/errors"
	"github.com/accsetupsviewer/server/internal/ratelimit"
)

// RateLimiter limits requests per client key.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a limiter that allows ratePerInterval requests per interval,
// with bursts up to burst. 20 per minute becomes 0.333 requests per second.
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// rateLimitMiddleware rejects requests from a client IP that exceeded the limiter
// with 429 Too Many Requests.
func rateLimitMiddleware(api huma.API, limiter *RateLimiter, logger *slog.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := clientIP(ctx.RemoteAddr())
		if !limiter.Allow(key) {
			logger.Warn("rate limit exceeded", "ip", key, "path", ctx.URL().Path)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests,
				"Too many requests. Please try again later.", domainerrors.ErrRateLimited)
			return
		}
		next(ctx)
	}
}

// clientIP strips the port from a remote address. chi's RealIP middleware has already
// replaced it with the forwarded client address when one was sent.
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
