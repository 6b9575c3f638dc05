package moderation

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/admin"
	"github.com/persona/persona-api/internal/domain/content"
	"github.com/persona/persona-api/internal/domain/notification"
	"github.com/persona/persona-api/internal/domain/user"
)

type memContent struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*content.Item
	mutations int
	findErr   error
}

func newMemContent(items ...*content.Item) *memContent {
	m := &memContent{items: make(map[uuid.UUID]*content.Item)}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

func (m *memContent) FindByID(ctx context.Context, kind content.Kind, id uuid.UUID) (*content.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	item, ok := m.items[id]
	if !ok || item.Kind != kind {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (m *memContent) UpdateVisibility(ctx context.Context, kind content.Kind, id uuid.UUID, visible bool, reason string) (*content.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations++
	item, ok := m.items[id]
	if !ok || item.Kind != kind {
		return nil, content.ErrNotFound
	}
	item.IsHidden = !visible
	item.HiddenReason = sql.NullString{String: reason, Valid: !visible && reason != ""}
	item.UpdatedAt = time.Now()
	cp := *item
	return &cp, nil
}

func (m *memContent) Delete(ctx context.Context, kind content.Kind, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations++
	item, ok := m.items[id]
	if !ok || item.Kind != kind {
		return content.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memContent) ListHidden(ctx context.Context, kind content.Kind, limit, offset int) ([]*content.Item, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*content.Item
	for _, item := range m.items {
		if item.Kind == kind && item.IsHidden {
			cp := *item
			out = append(out, &cp)
		}
	}
	total := len(out)
	if offset >= total {
		return []*content.Item{}, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

type sentNotification struct {
	UserID  uuid.UUID
	Kind    notification.Kind
	Title   string
	Message string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Notify(ctx context.Context, userID uuid.UUID, kind notification.Kind, title, message string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Kind: kind, Title: title, Message: message})
	return true
}

type failingCreator struct{}

func (failingCreator) Create(ctx context.Context, userID uuid.UUID, kind notification.Kind, title, message string) (*notification.Notification, error) {
	return nil, errors.New("notifications table unavailable")
}

type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) LogAction(ctx context.Context, actor *admin.Principal, action, entityType string, entityID uuid.UUID, reason string) {
	a.actions = append(a.actions, action)
}

// headerResolver picks the principal from the X-Test-Role header
type headerResolver struct{}

func (headerResolver) ResolvePrincipal(r *http.Request) (*admin.Principal, error) {
	role := r.Header.Get("X-Test-Role")
	if role == "" {
		return nil, nil
	}
	return &admin.Principal{ID: uuid.New(), Email: "staff@example.com", Role: user.Role(role), IsActive: true}, nil
}

func newPost(author uuid.UUID, hidden bool) *content.Item {
	now := time.Now()
	return &content.Item{
		ID:        uuid.New(),
		Kind:      content.KindPost,
		AuthorID:  author,
		Body:      "hello world",
		IsHidden:  hidden,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newComment(author uuid.UUID) *content.Item {
	item := newPost(author, false)
	item.Kind = content.KindComment
	item.PostID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	return item
}

func principal(role user.Role) *admin.Principal {
	return &admin.Principal{ID: uuid.New(), Email: "staff@example.com", Role: role, IsActive: true}
}
