package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/pkg/logger"
)

// Creator persists notifications
type Creator interface {
	Create(ctx context.Context, userID uuid.UUID, kind Kind, title, message string) (*Notification, error)
}

// Notifier is the best-effort side of notification delivery: it never
// returns an error, so callers cannot roll back work because of it.
type Notifier struct {
	creator Creator
}

// NewNotifier creates best-effort notifier
func NewNotifier(creator Creator) *Notifier {
	return &Notifier{creator: creator}
}

// Notify creates the notification and reports whether it was stored
func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, kind Kind, title, message string) bool {
	if n == nil || n.creator == nil {
		return false
	}

	if _, err := n.creator.Create(ctx, userID, kind, title, message); err != nil {
		logger.FromContext(ctx).Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("kind", string(kind)).
			Msg("Failed to create notification")
		return false
	}
	return true
}
