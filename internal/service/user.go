package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/target/mmk-auth-api/internal/domain/model"
	apperrors "github.com/target/mmk-auth-api/internal/errors"
	"github.com/target/mmk-auth-api/internal/ports"
)

// UserService provides read access to users.
type UserService struct {
	repo ports.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(repo ports.UserRepository) *UserService {
	if repo == nil {
		panic("UserRepository is required")
	}
	return &UserService{repo: repo}
}

// GetByID returns the user with id. Unknown or malformed ids are NotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrEmptyUserID) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail returns the user registered under email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}
