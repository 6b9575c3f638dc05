package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persona/persona-api/internal/pkg/jwt"
)

func newRedisStore(t *testing.T) (*RedisRevocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRevocationStore(client), mr
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestGetSessionWithoutToken(t *testing.T) {
	p := NewProvider(jwt.NewService("secret", time.Hour), nil)

	s, err := p.GetSession(requestWithToken(""))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestGetSessionInvalidTokenIsNoSession(t *testing.T) {
	p := NewProvider(jwt.NewService("secret", time.Hour), nil)

	s, err := p.GetSession(requestWithToken("garbage"))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestGetSessionValidToken(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Hour)
	p := NewProvider(jwtSvc, nil)
	userID := uuid.New()
	issued, err := jwtSvc.GenerateAccessToken(userID)
	require.NoError(t, err)

	s, err := p.GetSession(requestWithToken(issued.Token))
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, issued.JTI, s.TokenID)
}

func TestGetSessionFromCookie(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Hour)
	p := NewProvider(jwtSvc, nil)
	issued, err := jwtSvc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issued.Token})

	s, err := p.GetSession(req)
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestEndRevokesSession(t *testing.T) {
	store, mr := newRedisStore(t)
	jwtSvc := jwt.NewService("secret", time.Hour)
	p := NewProvider(jwtSvc, store)
	issued, err := jwtSvc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	s, err := p.GetSession(requestWithToken(issued.Token))
	require.NoError(t, err)
	require.NotNil(t, s)

	require.NoError(t, p.End(context.Background(), s))
	assert.True(t, mr.Exists(revokedKeyPrefix+issued.JTI))

	s, err = p.GetSession(requestWithToken(issued.Token))
	require.NoError(t, err)
	assert.Nil(t, s)
}

type failingStore struct{ NoopRevocationStore }

func (failingStore) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestGetSessionStoreFailureIsError(t *testing.T) {
	jwtSvc := jwt.NewService("secret", time.Hour)
	p := NewProvider(jwtSvc, failingStore{})
	issued, err := jwtSvc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	s, err := p.GetSession(requestWithToken(issued.Token))
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestTokenFromRequestRejectsOtherSchemes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, TokenFromRequest(req))
}
