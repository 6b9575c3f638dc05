package user

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role represents the stored role of an account
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
	RoleUser      Role = "USER"
)

// User represents a stored account (users table)
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	DisplayName  string         `db:"display_name"`
	PasswordHash string         `db:"password_hash"`
	Role         Role           `db:"role"`
	IsActive     bool           `db:"is_active"`
	MBTIType     sql.NullString `db:"mbti_type"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// IsStaff returns true for accounts that may enter the admin area
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleModerator
}

// IsValidRole checks if role is one of the stored roles
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// ListFilter narrows user listings
type ListFilter struct {
	Role   *Role
	Search string
	Limit  int
	Offset int
}

// NormalizeEmail is the canonical form emails are stored and looked up in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
