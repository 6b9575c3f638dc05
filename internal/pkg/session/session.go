package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/pkg/jwt"
	"github.com/persona/persona-api/internal/pkg/logger"
)

// CookieName is the cookie carrying the session token for browser clients
const CookieName = "session_token"

// Session is the subject of a valid session token
type Session struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// RevocationStore tracks session tokens that were ended before expiry
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Provider extracts sessions from requests
type Provider struct {
	jwt     *jwt.Service
	revoked RevocationStore
}

// NewProvider creates session provider. A nil store disables revocation checks.
func NewProvider(jwtService *jwt.Service, revoked RevocationStore) *Provider {
	if revoked == nil {
		revoked = NoopRevocationStore{}
	}
	return &Provider{jwt: jwtService, revoked: revoked}
}

// GetSession returns the request's session, or nil when there is none.
// A missing, malformed, expired or revoked token is "no session", not an error;
// an error is returned only when the revocation store cannot be consulted.
func (p *Provider) GetSession(r *http.Request) (*Session, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, nil
	}

	claims, err := p.jwt.ValidateAccessToken(token)
	if err != nil {
		logger.FromContext(r.Context()).Debug().Err(err).Msg("Rejected session token")
		return nil, nil
	}

	revoked, err := p.revoked.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, nil
	}

	s := &Session{UserID: claims.UserID, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// End revokes the session until its natural expiry
func (p *Provider) End(ctx context.Context, s *Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return p.revoked.Revoke(ctx, s.TokenID, ttl)
}

// TokenFromRequest reads a bearer token from the Authorization header,
// falling back to the session cookie
func TokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
