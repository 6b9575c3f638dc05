package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/user"
	"github.com/persona/persona-api/internal/pkg/session"
)

// fakeSessions maps bearer tokens to user ids
type fakeSessions struct {
	tokens map[string]uuid.UUID
	err    error
}

func (f *fakeSessions) GetSession(r *http.Request) (*session.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	id, ok := f.tokens[session.TokenFromRequest(r)]
	if !ok {
		return nil, nil
	}
	return &session.Session{UserID: id, TokenID: "jti", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*user.User
	getErr  error
	listErr error
	lookups int
}

func newFakeUsers(users ...*user.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]*user.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byID[id], nil
}

func (f *fakeUsers) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []*user.User
	for _, u := range f.byID {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		out = append(out, u)
	}
	total := len(out)
	if filter.Offset >= len(out) {
		return []*user.User{}, total, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (f *fakeUsers) CountByRole(ctx context.Context) (map[user.Role]int, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	counts := map[user.Role]int{}
	for _, u := range f.byID {
		counts[u.Role]++
	}
	return counts, nil
}

type fakeRepo struct {
	logs     []*AuditLog
	stats    *ContentStats
	statsErr error
	logErr   error
}

func (f *fakeRepo) CreateAuditLog(ctx context.Context, l *AuditLog) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeRepo) ListRecentAuditLogs(ctx context.Context, limit int) ([]*AuditLog, error) {
	if len(f.logs) > limit {
		return f.logs[:limit], nil
	}
	return f.logs, nil
}

func (f *fakeRepo) GetContentStats(ctx context.Context) (*ContentStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	if f.stats == nil {
		return &ContentStats{}, nil
	}
	return f.stats, nil
}

var errStorage = errors.New("connection refused")

func newUser(role user.Role, active bool) *user.User {
	id := uuid.New()
	return &user.User{
		ID:          id,
		Email:       string(role) + "-" + id.String()[:8] + "@example.com",
		DisplayName: string(role),
		Role:        role,
		IsActive:    active,
		CreatedAt:   time.Now(),
	}
}

func authedRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}
