package ports

// Package ports defines interfaces (hexagonal ports) for auth and task behavior.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	"github.com/target/mmk-auth-api/internal/domain/model"
)

// UserRepository persists users. Lookups that match nothing return an
// apperrors NotFound; Create on a taken email returns an apperrors Conflict.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
}

// UserStore is a UserRepository that can scope several calls to one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UserStore interface {
	UserRepository
	WithTx(ctx context.Context, fn func(repo UserRepository) error) error
}

// PasswordHasher produces and checks self-describing password hashes.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Verify reports false for a mismatch or a malformed hash; the error is
	// reserved for failures unrelated to the inputs (e.g. ctx canceled).
	Verify(ctx context.Context, password, encoded string) (bool, error)
}

// Standard claim names carried by session tokens.
const (
	ClaimSubject = "sub"
	ClaimExpiry  = "exp"
)

// TokenClaims is the decoded payload of a session token.
type TokenClaims map[string]any

// Subject returns the "sub" claim or "" when absent or not a string.
func (c TokenClaims) Subject() string {
	s, _ := c[ClaimSubject].(string)
	return s
}

var (
	// ErrInvalidToken covers every decode failure other than expiry.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for a correctly signed token past its exp claim.
	ErrTokenExpired = errors.New("token expired")
)

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Encode(claims TokenClaims, ttl time.Duration) (string, error)
	// Decode returns ErrInvalidToken or ErrTokenExpired, never a more specific error.
	Decode(token string) (TokenClaims, error)
}
