package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines content data access for moderation
type Repository interface {
	FindByID(ctx context.Context, kind Kind, id uuid.UUID) (*Item, error)
	UpdateVisibility(ctx context.Context, kind Kind, id uuid.UUID, visible bool, reason string) (*Item, error)
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error
	ListHidden(ctx context.Context, kind Kind, limit, offset int) ([]*Item, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates content repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func columns(kind Kind) string {
	if kind == KindComment {
		return `id, post_id, author_id, body, is_hidden, hidden_reason, created_at, updated_at`
	}
	return `id, author_id, body, is_hidden, hidden_reason, created_at, updated_at`
}

// FindByID returns the item, or nil when it does not exist
func (r *repository) FindByID(ctx context.Context, kind Kind, id uuid.UUID) (*Item, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}

	var item Item
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, columns(kind), kind.table())
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("content repository find %s: %w", kind.Noun(), err)
	}
	item.Kind = kind
	return &item, nil
}

// UpdateVisibility sets the hidden flag in a single statement and returns the
// updated row; ErrNotFound if the row vanished in between
func (r *repository) UpdateVisibility(ctx context.Context, kind Kind, id uuid.UUID, visible bool, reason string) (*Item, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}

	hiddenReason := sql.NullString{String: reason, Valid: !visible && reason != ""}
	query := fmt.Sprintf(`
		UPDATE %s SET is_hidden = $2, hidden_reason = $3, updated_at = $4
		WHERE id = $1
		RETURNING %s
	`, kind.table(), columns(kind))

	var item Item
	if err := r.db.GetContext(ctx, &item, query, id, !visible, hiddenReason, time.Now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("content repository update %s visibility: %w", kind.Noun(), err)
	}
	item.Kind = kind
	return &item, nil
}

// Delete removes the row; ErrNotFound if nothing was deleted
func (r *repository) Delete(ctx context.Context, kind Kind, id uuid.UUID) error {
	if !kind.IsValid() {
		return ErrInvalidKind
	}

	result, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, kind.table()), id)
	if err != nil {
		return fmt.Errorf("content repository delete %s: %w", kind.Noun(), err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListHidden returns hidden items newest first, with the total count
func (r *repository) ListHidden(ctx context.Context, kind Kind, limit, offset int) ([]*Item, int, error) {
	if !kind.IsValid() {
		return nil, 0, ErrInvalidKind
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE is_hidden`, kind.table())); err != nil {
		return nil, 0, fmt.Errorf("content repository count hidden %s: %w", kind.Noun(), err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE is_hidden
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2
	`, columns(kind), kind.table())

	items := []*Item{}
	if err := r.db.SelectContext(ctx, &items, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("content repository list hidden %s: %w", kind.Noun(), err)
	}
	for _, item := range items {
		item.Kind = kind
	}
	return items, total, nil
}
