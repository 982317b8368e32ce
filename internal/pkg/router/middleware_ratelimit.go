package router

import (
	"errors"
	"net"
	"net/http"

	"github.com/tixgo/tixgo/internal/pkg/rate"
)

// MiddlewareRateLimit rejects requests whose client IP exceeds the limiter.
//
// Rejections are written directly with a fixed payload so clients get a
// stable shape regardless of which endpoint was throttled.
func MiddlewareRateLimit(limiter rate.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := limiter.Allow(clientKey(r)); err != nil {
				if errors.Is(err, rate.ErrRateLimited) {
					writeJSON(w, errorResponse{
						Code:    "429",
						Message: "You are doing that too fast. Please try again later.",
					}, http.StatusTooManyRequests)
					return
				}

				writeJSON(w, errorResponse{Code: "SERVER_ERROR", Message: "Internal server error"}, http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey returns the client IP. RemoteAddr is normalized by middlewareIP
// before this runs, but a raw host:port form is still handled.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
