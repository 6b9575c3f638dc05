package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// schema is applied in order; every statement is idempotent
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		display_name  TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'USER' CHECK (role IN ('ADMIN', 'MODERATOR', 'USER')),
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		mbti_type     TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id            UUID PRIMARY KEY,
		author_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		body          TEXT NOT NULL,
		is_hidden     BOOLEAN NOT NULL DEFAULT FALSE,
		hidden_reason TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id            UUID PRIMARY KEY,
		post_id       UUID NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
		author_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		body          TEXT NOT NULL,
		is_hidden     BOOLEAN NOT NULL DEFAULT FALSE,
		hidden_reason TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		kind       TEXT NOT NULL,
		title      TEXT NOT NULL,
		message    TEXT NOT NULL,
		is_read    BOOLEAN NOT NULL DEFAULT FALSE,
		read_at    TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS admin_audit_logs (
		id          UUID PRIMARY KEY,
		admin_id    UUID,
		admin_email TEXT NOT NULL,
		action      TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id   UUID,
		reason      TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_audit_logs_created ON admin_audit_logs (created_at DESC)`,
}

// Migrate creates the tables the service needs
func Migrate(ctx context.Context, db *sqlx.DB) error {
	log.Info().Msg("Starting database migration...")
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i, err)
		}
	}
	log.Info().Int("statements", len(schema)).Msg("Database migration completed")
	return nil
}
