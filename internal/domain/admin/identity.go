package admin

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/user"
	"github.com/persona/persona-api/internal/pkg/session"
)

// SessionProvider yields the session attached to a request, or nil
type SessionProvider interface {
	GetSession(r *http.Request) (*session.Session, error)
}

// UserFinder loads stored user records
type UserFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Resolver turns a request's session into a Principal
type Resolver struct {
	sessions SessionProvider
	users    UserFinder
}

// NewResolver creates identity resolver
func NewResolver(sessions SessionProvider, users UserFinder) *Resolver {
	return &Resolver{sessions: sessions, users: users}
}

// ResolvePrincipal returns the acting principal, or nil when the request has
// no session, the user no longer exists, or the account is inactive.
// Lookup failures are returned wrapped in ErrResolutionFailed.
func (r *Resolver) ResolvePrincipal(req *http.Request) (*Principal, error) {
	sess, err := r.sessions.GetSession(req)
	if err != nil {
		return nil, fmt.Errorf("%w: session: %v", ErrResolutionFailed, err)
	}
	if sess == nil {
		return nil, nil
	}

	u, err := r.users.GetByID(req.Context(), sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user lookup: %v", ErrResolutionFailed, err)
	}
	if u == nil || !u.IsActive {
		return nil, nil
	}

	return &Principal{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}, nil
}
