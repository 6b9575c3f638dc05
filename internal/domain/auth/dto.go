package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/persona/persona-api/internal/domain/user"
)

// LoginRequest for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returned after login
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // seconds until the session token expires

	expiresAt time.Time
}

// UserResponse represents user in API response
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	MBTIType    *string   `json:"mbti_type,omitempty"`
	CreatedAt   string    `json:"created_at"`
}

// NewUserResponse creates UserResponse from user entity
func NewUserResponse(u *user.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
	if u.MBTIType.Valid {
		mbti := u.MBTIType.String
		resp.MBTIType = &mbti
	}
	return resp
}
