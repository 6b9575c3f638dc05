package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted for new accounts
const MinLength = 8

var ErrTooShort = errors.New("password is too short")

// Cost is the bcrypt cost factor; tests lower it to bcrypt.MinCost
var Cost = 12

// Hash hashes password using bcrypt
func Hash(password string) (string, error) {
	if len(password) < MinLength {
		return "", ErrTooShort
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	return string(bytes), err
}

// Verify compares password with hash
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
