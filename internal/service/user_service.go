package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/repository"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

// ProfilePatch carries optional profile changes.
type ProfilePatch struct {
	Name  *string
	Email *string
}

// UserService manages user profiles.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetProfile returns a user by id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// GetUser is the administrative lookup.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.GetProfile(ctx, userID)
}

// ListUsers returns every registered user.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UpdateProfile merges name and email. A new email must be unique.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name must not be empty", nil)
		}
		user.Name = name
	}
	if patch.Email != nil {
		email := NormalizeEmail(*patch.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if email != user.Email {
			existing, err := s.users.GetByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
			}
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.MapError(err)
			}
			user.Email = email
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, mapUserWriteError(err, user.Email)
	}
	return user, nil
}
