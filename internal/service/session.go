package service

import (
	"context"
	"errors"
	"strings"

	"github.com/target/mmk-auth-api/internal/domain/model"
	apperrors "github.com/target/mmk-auth-api/internal/errors"
	"github.com/target/mmk-auth-api/internal/ports"
)

// userLookup is the subset of UserService the authenticator needs.
type userLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticator resolves a session token to the user it was issued for.
// The user is loaded on every call; nothing is cached between requests.
type Authenticator struct {
	users  userLookup
	tokens ports.TokenCodec
}

// NewAuthenticator constructs a new Authenticator.
func NewAuthenticator(users userLookup, tokens ports.TokenCodec) *Authenticator {
	if users == nil {
		panic("user lookup is required")
	}
	if tokens == nil {
		panic("TokenCodec is required")
	}
	return &Authenticator{users: users, tokens: tokens}
}

// Authenticate returns the user for token or one of NotAuthenticated,
// InvalidToken, TokenExpired or UserNotFound.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.NotAuthenticated()
	}

	claims, err := a.tokens.Decode(token)
	switch {
	case errors.Is(err, ports.ErrTokenExpired):
		return nil, apperrors.TokenExpired()
	case err != nil:
		return nil, apperrors.InvalidToken()
	}

	sub := claims.Subject()
	if sub == "" {
		return nil, apperrors.InvalidToken()
	}

	user, err := a.users.GetByID(ctx, sub)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.UserNotFound()
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "load session user")
	}
	return user, nil
}
