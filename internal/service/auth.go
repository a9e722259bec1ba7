package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/target/mmk-auth-api/internal/domain/model"
	apperrors "github.com/target/mmk-auth-api/internal/errors"
	"github.com/target/mmk-auth-api/internal/ports"
)

// TokenIssuer pairs the codec with the lifetime of minted session tokens.
type TokenIssuer struct {
	Codec ports.TokenCodec
	TTL   time.Duration
}

// Issue mints a session token whose subject is userID.
func (t TokenIssuer) Issue(userID string) (string, error) {
	token, err := t.Codec.Encode(ports.TokenClaims{ports.ClaimSubject: userID}, t.TTL)
	if err != nil {
		return "", fmt.Errorf("encode session token: %w", err)
	}
	return token, nil
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users  ports.UserStore      // Required
	Hasher ports.PasswordHasher // Required
	Tokens TokenIssuer          // Required: Codec must be set
}

// AuthService owns the signup and signin business rules.
type AuthService struct {
	users  ports.UserStore
	hasher ports.PasswordHasher
	tokens TokenIssuer

	// dummyHash is verified against on unknown emails so both signin failures cost one hash.
	dummyOnce sync.Once
	dummyHash string
}

const dummyPassword = "not-a-real-password"

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil {
		panic("UserStore is required")
	}
	if opts.Hasher == nil {
		panic("PasswordHasher is required")
	}
	if opts.Tokens.Codec == nil {
		panic("TokenCodec is required")
	}
	return &AuthService{users: opts.Users, hasher: opts.Hasher, tokens: opts.Tokens}
}

// AuthResult is returned by a successful signup or signin.
type AuthResult struct {
	User  *model.User
	Token string
}

// SignUp registers a new user and mints a session token for it. An email that
// is already registered fails with UserAlreadyExists, whether it is caught by
// the lookup or by the unique index on insert.
func (s *AuthService) SignUp(ctx context.Context, creds model.Credentials) (*AuthResult, error) {
	creds = creds.Normalize()
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	// The hash is computed before the transaction opens.
	hashed, err := s.hasher.Hash(ctx, creds.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	var created *model.User
	err = s.users.WithTx(ctx, func(repo ports.UserRepository) error {
		existing, lookupErr := repo.GetByEmail(ctx, creds.Email)
		switch {
		case lookupErr == nil && existing != nil:
			return apperrors.UserAlreadyExists()
		case lookupErr != nil && !apperrors.IsNotFound(lookupErr):
			return fmt.Errorf("check email: %w", lookupErr)
		}

		u, createErr := repo.Create(ctx, &model.User{Email: creds.Email, HashedPassword: hashed})
		if createErr != nil {
			if apperrors.IsConflict(createErr) {
				return apperrors.UserAlreadyExists()
			}
			return createErr
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: created, Token: token}, nil
}

// SignIn checks credentials and mints a session token. An unknown email, a
// wrong password and credentials that could never match a stored user all
// fail with the same InvalidCredentials error.
func (s *AuthService) SignIn(ctx context.Context, creds model.Credentials) (*AuthResult, error) {
	creds = creds.Normalize()
	if err := creds.Validate(); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	var user *model.User
	err := s.users.WithTx(ctx, func(repo ports.UserRepository) error {
		u, lookupErr := repo.GetByEmail(ctx, creds.Email)
		if lookupErr != nil {
			return lookupErr
		}
		user = u
		return nil
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.burnVerify(ctx, creds.Password)
			return nil, apperrors.InvalidCredentials()
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, creds.Password, user.HashedPassword)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "verify password")
	}
	if !ok {
		return nil, apperrors.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// burnVerify runs one password verification whose result is discarded.
func (s *AuthService) burnVerify(ctx context.Context, password string) {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(ctx, dummyPassword)
		if err == nil {
			s.dummyHash = h
		}
	})
	if s.dummyHash == "" {
		return
	}
	_, _ = s.hasher.Verify(ctx, password, s.dummyHash)
}

// validateCredentials reports the first invalid field (in name order) as an apperrors Validation.
func validateCredentials(creds model.Credentials) error {
	err := creds.Validate()
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return apperrors.Validation(err.Error())
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	first := names[0]
	return apperrors.ValidationField(first, fmt.Sprintf("%s: %v", first, fields[first]))
}
