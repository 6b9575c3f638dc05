package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/persona/persona-api/internal/pkg/response"
)

// RateLimit limits requests per signed-in user, falling back to client IP.
// Tokens that do not resolve to a session share their IP's bucket.
func RateLimit(sessions SessionProvider, requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(rateLimitKey(sessions)),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w)
		}),
	)
}

func rateLimitKey(sessions SessionProvider) httprate.KeyFunc {
	return func(r *http.Request) (string, error) {
		if s, err := sessions.GetSession(r); err == nil && s != nil {
			return "user:" + s.UserID.String(), nil
		}
		key, err := httprate.KeyByIP(r)
		if err != nil {
			return "", err
		}
		return "ip:" + key, nil
	}
}
