package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/persona/persona-api/internal/domain/user"
	"github.com/persona/persona-api/internal/pkg/jwt"
	"github.com/persona/persona-api/internal/pkg/password"
	"github.com/persona/persona-api/internal/pkg/session"
)

func init() {
	password.Cost = bcrypt.MinCost
}

type fakeUserStore struct {
	users map[string]*user.User
	err   error
}

func newFakeUserStore(users ...*user.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*user.User)}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[email], nil
}

func newTestUser(t *testing.T, email string, role user.Role, active bool) *user.User {
	t.Helper()
	hash, err := password.Hash("password123")
	require.NoError(t, err)
	return &user.User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  "Test " + string(role),
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
		MBTIType:     sql.NullString{String: "INTJ", Valid: true},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func newTestService(t *testing.T, users *fakeUserStore) (*Service, *session.Provider) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens := jwt.NewService("test-secret", time.Hour)
	sessions := session.NewProvider(tokens, session.NewRedisRevocationStore(client))
	return NewService(users, tokens, sessions), sessions
}

func TestLoginIssuesToken(t *testing.T) {
	u := newTestUser(t, "admin@example.com", user.RoleAdmin, true)
	svc, _ := newTestService(t, newFakeUserStore(u))

	res, err := svc.Login(context.Background(), &LoginRequest{Email: "  Admin@Example.com ", Password: "password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Greater(t, res.ExpiresIn, 0)
	assert.Equal(t, u.ID, res.User.ID)
	require.NotNil(t, res.User.MBTIType)
	assert.Equal(t, "INTJ", *res.User.MBTIType)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	u := newTestUser(t, "user@example.com", user.RoleUser, true)
	svc, _ := newTestService(t, newFakeUserStore(u))

	_, err := svc.Login(context.Background(), &LoginRequest{Email: u.Email, Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	u := newTestUser(t, "mod@example.com", user.RoleModerator, false)
	svc, _ := newTestService(t, newFakeUserStore(u))

	_, err := svc.Login(context.Background(), &LoginRequest{Email: u.Email, Password: "password123"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestLoginWrapsStoreError(t *testing.T) {
	store := newFakeUserStore()
	store.err = errors.New("connection refused")
	svc, _ := newTestService(t, store)

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "a@example.com", Password: "password123"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "connection refused"))
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	u := newTestUser(t, "user@example.com", user.RoleUser, true)
	svc, _ := newTestService(t, newFakeUserStore(u))

	got, err := svc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = svc.Me(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
