package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	maxEmailLen    = 320
	maxPasswordLen = 1024
)

// User is the persisted login identity.
type User struct {
	ID             string    `json:"id"         db:"id"`
	Email          string    `json:"email"      db:"email"`
	HashedPassword string    `json:"-"          db:"hashed_password"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// UserResponse is the public projection returned by GET /user/me.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Response projects u without the password hash.
func (u *User) Response() UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// NormalizeEmail is applied before every store and lookup so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Credentials is the request body of signup and signin.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize returns a copy with the email normalized. The password is left untouched.
func (c Credentials) Normalize() Credentials {
	c.Email = NormalizeEmail(c.Email)
	return c
}

// Validate checks presence and shape. Password strength is not enforced.
func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, validation.Length(3, maxEmailLen), is.Email),
		validation.Field(&c.Password, validation.Required, validation.Length(1, maxPasswordLen)),
	)
}

// ErrEmptyUserID is returned when a lookup is attempted without an id.
var ErrEmptyUserID = errors.New("user id is required")
