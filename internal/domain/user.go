// Package domain provides defenitions of all entities.
package domain

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound indicates the the user is not found.
	ErrUserNotFound = &Error{KindUserNotFound, "user not found"}
	// ErrDuplicateEmail indicates the the user with the given email already exists.
	ErrDuplicateEmail = &Error{KindDuplicateEmail, "email already exists"}
)

// User holds user identity data.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
