package admin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines admin data access
type Repository interface {
	// Audit logs
	CreateAuditLog(ctx context.Context, log *AuditLog) error
	ListRecentAuditLogs(ctx context.Context, limit int) ([]*AuditLog, error)

	// Analytics
	GetContentStats(ctx context.Context) (*ContentStats, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates admin repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAuditLog(ctx context.Context, log *AuditLog) error {
	query := `
		INSERT INTO admin_audit_logs (id, admin_id, admin_email, action, entity_type, entity_id, reason, created_at)
		VALUES (:id, :admin_id, :admin_email, :action, :entity_type, :entity_id, :reason, :created_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("admin repository create audit log: %w", err)
	}
	return nil
}

func (r *repository) ListRecentAuditLogs(ctx context.Context, limit int) ([]*AuditLog, error) {
	query := `
		SELECT id, admin_id, admin_email, action, entity_type, entity_id, reason, created_at
		FROM admin_audit_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	logs := []*AuditLog{}
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("admin repository list audit logs: %w", err)
	}
	return logs, nil
}

func (r *repository) GetContentStats(ctx context.Context) (*ContentStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM posts) AS posts,
			(SELECT COUNT(*) FROM posts WHERE is_hidden) AS hidden_posts,
			(SELECT COUNT(*) FROM comments) AS comments,
			(SELECT COUNT(*) FROM comments WHERE is_hidden) AS hidden_comments,
			(SELECT COUNT(*) FROM notifications) AS notifications,
			(SELECT COUNT(*) FROM notifications WHERE NOT is_read) AS unread_notifications,
			(SELECT COUNT(*) FROM admin_audit_logs WHERE created_at > NOW() - INTERVAL '24 hours') AS moderation_actions_24h
	`
	var stats ContentStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("admin repository content stats: %w", err)
	}
	return &stats, nil
}
