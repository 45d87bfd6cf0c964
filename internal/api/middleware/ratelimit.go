package middleware

import (
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/studiokita/booking-service/internal/api/handlers"
)

type rateLimiters struct {
	limiters sync.Map
	rps      float64
	burst    int
}

func (l *rateLimiters) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

// clientKey identifies the caller for rate limiting. Public routes take
// unauthenticated traffic, so the remote IP is the only stable handle.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimit rejects requests above the configured per-client rate with a 429.
func RateLimit(rps float64, burst int) mux.MiddlewareFunc {
	if burst <= 0 {
		burst = 5
	}
	limiters := &rateLimiters{rps: rps, burst: burst}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiters.get(clientKey(r)).Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
