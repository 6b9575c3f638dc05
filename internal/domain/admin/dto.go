package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/user"
)

// UserResponse represents a user in admin listings
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	MBTIType    *string   `json:"mbti_type,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// UserResponseFromEntity converts entity to response
func UserResponseFromEntity(u *user.User) *UserResponse {
	resp := &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
	if u.MBTIType.Valid {
		resp.MBTIType = &u.MBTIType.String
	}
	return resp
}

// PrincipalResponse describes the current admin
type PrincipalResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
}

// PrincipalResponseFrom converts principal to response
func PrincipalResponseFrom(p *Principal) *PrincipalResponse {
	return &PrincipalResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Permissions: PermissionsFor(p.Role),
	}
}

// StatsResponse is returned by GET /admin/stats
type StatsResponse struct {
	Users       map[user.Role]int `json:"users"`
	TotalUsers  int               `json:"total_users"`
	Content     *ContentStats     `json:"content"`
	GeneratedAt string            `json:"generated_at"`
}

// ActivityResponse is one entry of GET /admin/activity
type ActivityResponse struct {
	ID         uuid.UUID  `json:"id"`
	AdminEmail string     `json:"admin_email"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Reason     *string    `json:"reason,omitempty"`
	CreatedAt  string     `json:"created_at"`
}

// ActivityResponseFromEntity converts audit log to response
func ActivityResponseFromEntity(l *AuditLog) *ActivityResponse {
	resp := &ActivityResponse{
		ID:         l.ID,
		AdminEmail: l.AdminEmail,
		Action:     l.Action,
		EntityType: l.EntityType,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.EntityID.Valid {
		id := l.EntityID.UUID
		resp.EntityID = &id
	}
	if l.Reason.Valid {
		resp.Reason = &l.Reason.String
	}
	return resp
}
