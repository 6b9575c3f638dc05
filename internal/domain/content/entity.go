package content

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Kind identifies a moderatable content type
type Kind string

const (
	KindPost    Kind = "POST"
	KindComment Kind = "COMMENT"
)

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	return k == KindPost || k == KindComment
}

// Noun returns the lowercase name used in messages and audit actions
func (k Kind) Noun() string {
	if k == KindComment {
		return "comment"
	}
	return "post"
}

// table maps kinds onto their storage tables; only these names reach SQL
func (k Kind) table() string {
	if k == KindComment {
		return "comments"
	}
	return "posts"
}

// Visibility of a content item
type Visibility string

const (
	Visible Visibility = "VISIBLE"
	Hidden  Visibility = "HIDDEN"
)

// Item is a post or comment as seen by moderation.
// A deleted item has no row, so there is no DELETED value here.
type Item struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Kind         Kind           `db:"-" json:"kind"`
	AuthorID     uuid.UUID      `db:"author_id" json:"author_id"`
	PostID       uuid.NullUUID  `db:"post_id" json:"-"`
	Body         string         `db:"body" json:"body"`
	IsHidden     bool           `db:"is_hidden" json:"-"`
	HiddenReason sql.NullString `db:"hidden_reason" json:"-"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Visibility returns the current visibility state
func (i *Item) Visibility() Visibility {
	if i.IsHidden {
		return Hidden
	}
	return Visible
}
