package shared

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// ExportLimiter caps export endpoints at limit requests a minute per user,
// or per IP for anonymous callers. Each call returns an independent counter.
func ExportLimiter(limit int) func(http.Handler) http.Handler {
	return httprate.Limit(limit, time.Minute,
		httprate.WithKeyFuncs(RateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Terlalu banyak permintaan ekspor, coba lagi nanti", http.StatusTooManyRequests)
		}),
	)
}

// RateLimitKey keys a request by session user, falling back to the client IP.
func RateLimitKey(r *http.Request) (string, error) {
	if user, ok := SignedInUser(r.Context()); ok {
		return "user:" + user, nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
