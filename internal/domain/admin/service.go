package admin

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/user"
	"github.com/persona/persona-api/internal/pkg/logger"
)

// UserLister is the part of the user store the admin area reads
type UserLister interface {
	List(ctx context.Context, filter user.ListFilter) ([]*user.User, int, error)
	CountByRole(ctx context.Context) (map[user.Role]int, error)
}

// Service handles admin business logic
type Service struct {
	repo  Repository
	users UserLister
	now   func() time.Time
}

// NewService creates admin service
func NewService(repo Repository, users UserLister) *Service {
	return &Service{repo: repo, users: users, now: time.Now}
}

// ListUsers returns a page of users
func (s *Service) ListUsers(ctx context.Context, filter user.ListFilter) ([]*user.User, int, error) {
	return s.users.List(ctx, filter)
}

// GetStats returns dashboard statistics
func (s *Service) GetStats(ctx context.Context) (*StatsResponse, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	content, err := s.repo.GetContentStats(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range byRole {
		total += n
	}

	return &StatsResponse{
		Users:       byRole,
		TotalUsers:  total,
		Content:     content,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	}, nil
}

// RecentActivity returns the latest admin actions
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]*AuditLog, error) {
	return s.repo.ListRecentAuditLogs(ctx, limit)
}

// LogAction records an audit entry. Failures are logged, never returned.
func (s *Service) LogAction(ctx context.Context, actor *Principal, action, entityType string, entityID uuid.UUID, reason string) {
	entry := &AuditLog{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   uuid.NullUUID{UUID: entityID, Valid: entityID != uuid.Nil},
		Reason:     sql.NullString{String: reason, Valid: reason != ""},
		CreatedAt:  s.now(),
	}
	if actor != nil {
		entry.AdminID = uuid.NullUUID{UUID: actor.ID, Valid: true}
		entry.AdminEmail = actor.Email
	}

	if err := s.repo.CreateAuditLog(ctx, entry); err != nil {
		logger.FromContext(ctx).Error().
			Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Msg("Failed to create audit log")
	}
}
