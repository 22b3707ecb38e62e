package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorization levels. Anything outside it is
// rejected, never defaulted.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrForbidden = errors.New("access forbidden")
var ErrSelfAction = errors.New("cannot perform this action on your own account")
var ErrTokenRevoked = errors.New("token revoked")

// User models an account in the admin panel.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch carries the updatable fields of a user. Nil means "leave as is".
type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
}
