package admin

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/user"
)

// Principal is the resolved actor of an admin request.
// It lives for one request and is never persisted.
type Principal struct {
	ID          uuid.UUID
	DisplayName string
	Email       string
	Role        user.Role
	IsActive    bool
}

// IsAdmin returns true for the highest privilege tier
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == user.RoleAdmin
}

// Can reports whether the principal holds perm
func (p *Principal) Can(perm Permission) bool {
	return p != nil && HasPermission(p.Role, perm)
}

// AuditLog represents an admin action log entry
type AuditLog struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	AdminID    uuid.NullUUID  `db:"admin_id" json:"admin_id"`
	AdminEmail string         `db:"admin_email" json:"admin_email"`
	Action     string         `db:"action" json:"action"`
	EntityType string         `db:"entity_type" json:"entity_type"`
	EntityID   uuid.NullUUID  `db:"entity_id" json:"entity_id"`
	Reason     sql.NullString `db:"reason" json:"-"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// ContentStats aggregates content and notification counters
type ContentStats struct {
	Posts               int `db:"posts" json:"posts"`
	HiddenPosts         int `db:"hidden_posts" json:"hidden_posts"`
	Comments            int `db:"comments" json:"comments"`
	HiddenComments      int `db:"hidden_comments" json:"hidden_comments"`
	Notifications       int `db:"notifications" json:"notifications"`
	UnreadNotifications int `db:"unread_notifications" json:"unread_notifications"`
	ModerationActions   int `db:"moderation_actions_24h" json:"moderation_actions_24h"`
}
