package notification

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Kind represents notification kind
type Kind string

const (
	KindContentHidden   Kind = "content_hidden"   // Author: a moderator hid their content
	KindContentRestored Kind = "content_restored" // Author: hidden content is visible again
	KindContentDeleted  Kind = "content_deleted"  // Author: an administrator deleted their content
)

// Notification represents a user notification
type Notification struct {
	ID        uuid.UUID    `db:"id"`
	UserID    uuid.UUID    `db:"user_id"`
	Kind      Kind         `db:"kind"`
	Title     string       `db:"title"`
	Message   string       `db:"message"`
	IsRead    bool         `db:"is_read"`
	ReadAt    sql.NullTime `db:"read_at"`
	CreatedAt time.Time    `db:"created_at"`
}
