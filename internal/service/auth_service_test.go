package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/citizenloop/internal/config"
	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/repository/repotest"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

func newAuthService(t *testing.T) (*AuthService, *repotest.UserStore) {
	t.Helper()
	users := repotest.NewUserStore()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}}
	return NewAuthService(cfg, AuthDependencies{UserRepo: users}), users
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     " Asha ",
		Email:    "Asha@Example.COM",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, domain.RoleCitizen, user.Role)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	admin, err := svc.Register(context.Background(), RegisterInput{Name: "Root", Email: "root@example.com", Password: "secret1", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}

func TestRegisterRejectsDuplicateEmailCaseInsensitively(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "DUP@example.com", Password: "secret2"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	cases := map[string]RegisterInput{
		"missing name":   {Email: "a@b.c", Password: "secret1"},
		"missing email":  {Name: "A", Password: "secret1"},
		"bad email":      {Name: "A", Email: "not-an-email", Password: "secret1"},
		"short password": {Name: "A", Email: "a@b.c", Password: "12345"},
		"unknown role":   {Name: "A", Email: "a@b.c", Password: "secret1", Role: "superuser"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(ctx, input)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), err)
		})
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "asha@example.com", Password: "secret1", Role: "ADMIN"})
	require.NoError(t, err)

	before := time.Now()
	user, token, err := svc.Login(ctx, "ASHA@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, "asha@example.com", token.Subject)
	assert.Equal(t, domain.RoleAdmin, token.Role)
	assert.WithinDuration(t, before.Add(time.Hour), token.ExpiresAt, 5*time.Second)

	verified, err := svc.VerifyToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", verified.Subject)
	assert.Equal(t, domain.RoleAdmin, verified.Role)

	_, err = svc.VerifyToken("garbage")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestLoginFailuresShareMessage(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "asha@example.com", "wrong-password")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret1")

	for _, err := range []error{wrongPassword, unknownEmail} {
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
		assert.Equal(t, InvalidCredentialsMessage, err.Error())
	}

	_, _, err = svc.Login(ctx, "", "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}
