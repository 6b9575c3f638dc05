package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user is deactivated")
	ErrUserNotFound       = errors.New("user not found")
)
