package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/pkg/logger"
)

// Service handles notification logic
type Service struct {
	repo     Repository
	realtime RealtimePublisher
	now      func() time.Time
}

// NewService creates notification service. realtime may be nil.
func NewService(repo Repository, realtime RealtimePublisher) *Service {
	return &Service{repo: repo, realtime: realtime, now: time.Now}
}

// Create stores a notification and pushes it to the user's live channel.
// Only the store error is returned; a failed push is logged.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, kind Kind, title, message string) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.realtime != nil {
		unread, err := s.repo.CountUnreadByUser(ctx, userID)
		if err != nil {
			unread = -1
		}
		if err := s.realtime.NotifyNew(ctx, userID, NotificationResponseFromEntity(n), unread); err != nil {
			logger.FromContext(ctx).Warn().
				Err(err).
				Str("user_id", userID.String()).
				Msg("Failed to publish realtime notification")
		}
	}

	return n, nil
}

// List returns notifications for user
func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// GetUnreadCount returns unread count
func (s *Service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnreadByUser(ctx, userID)
}

// MarkAsRead marks one of the user's notifications as read
func (s *Service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, userID, id)
}

// MarkAllAsRead marks all notifications as read
func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID)
}
