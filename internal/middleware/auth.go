package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/pkg/logger"
	"github.com/persona/persona-api/internal/pkg/response"
	"github.com/persona/persona-api/internal/pkg/session"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	SessionKey contextKey = "session"
)

// SessionProvider yields the session attached to a request, or nil
type SessionProvider interface {
	GetSession(r *http.Request) (*session.Session, error)
}

// Auth returns middleware that requires a valid session
func Auth(sessions SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.GetSession(r)
			if err != nil {
				logger.FromContext(r.Context()).Error().Err(err).Msg("Session lookup failed")
				response.Unauthorized(w, "Unauthorized")
				return
			}
			if s == nil {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, s.UserID)
			ctx = context.WithValue(ctx, SessionKey, s)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetSession extracts the session from context
func GetSession(ctx context.Context) *session.Session {
	s, _ := ctx.Value(SessionKey).(*session.Session)
	return s
}
