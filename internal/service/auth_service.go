package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/citizenloop/internal/auth"
	"github.com/spec-kit/citizenloop/internal/config"
	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/repository"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

// Password constraints. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// InvalidCredentialsMessage is returned for every failed login.
const InvalidCredentialsMessage = "invalid email or password"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// RegisterInput describes an account registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates an account. Role defaults to CITIZEN; unknown roles are
// rejected.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapUserWriteError(err, email)
	}
	return user, nil
}

// Login authenticates a user and issues a signed token. Unknown emails and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Token, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, nil, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperrors.NewUnauthorized(InvalidCredentialsMessage)
	}
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized(InvalidCredentialsMessage)
	}

	value, exp, err := s.tokenMgr.GenerateToken(user.Email, user.Role)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	return user, &domain.Token{Value: value, Subject: user.Email, Role: user.Role, ExpiresAt: exp}, nil
}

// VerifyToken validates a token and returns its subject and role.
func (s *AuthService) VerifyToken(token string) (*domain.Token, error) {
	claims, err := s.tokenMgr.ParseToken(strings.TrimSpace(token))
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	verified := &domain.Token{Value: token, Subject: claims.Subject, Role: claims.Role}
	if claims.ExpiresAt != nil {
		verified.ExpiresAt = claims.ExpiresAt.Time
	}
	return verified, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("invalid email format", map[string]any{"email": email})
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	if len(password) > MaxPasswordBytes {
		return apperrors.NewValidationError("password must be at most 72 bytes", nil)
	}
	return nil
}

func mapUserWriteError(err error, email string) error {
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return apperrors.NewConflict("email already registered", map[string]any{"email": email})
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("user", nil)
	}
	return apperrors.MapError(err)
}
