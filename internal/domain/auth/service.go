// internal/domain/auth/service.go
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/user"
	"github.com/persona/persona-api/internal/pkg/jwt"
	"github.com/persona/persona-api/internal/pkg/password"
	"github.com/persona/persona-api/internal/pkg/session"
)

// UserStore is the part of the user repository auth reads
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// SessionEnder revokes sessions
type SessionEnder interface {
	End(ctx context.Context, s *session.Session) error
}

// Service handles authentication business logic
type Service struct {
	users    UserStore
	tokens   *jwt.Service
	sessions SessionEnder
}

// NewService creates auth service
func NewService(users UserStore, tokens *jwt.Service, sessions SessionEnder) *Service {
	return &Service{users: users, tokens: tokens, sessions: sessions}
}

// Login checks credentials and issues a session token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrUserInactive
	}

	issued, err := s.tokens.GenerateAccessToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("login issue token: %w", err)
	}

	return &AuthResponse{
		User:        NewUserResponse(u),
		AccessToken: issued.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(issued.ExpiresAt).Seconds()),
		expiresAt:   issued.ExpiresAt,
	}, nil
}

// Logout ends the session so its token is no longer accepted
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	return s.sessions.End(ctx, sess)
}

// Me returns the current user
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
