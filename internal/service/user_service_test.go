package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/repository/repotest"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

func TestUpdateProfile(t *testing.T) {
	users := repotest.NewUserStore()
	svc := NewUserService(users)
	ctx := context.Background()

	asha := &domain.User{Name: "Asha", Email: "asha@example.com", Role: domain.RoleCitizen}
	ravi := &domain.User{Name: "Ravi", Email: "ravi@example.com", Role: domain.RoleCitizen}
	require.NoError(t, users.Create(ctx, asha))
	require.NoError(t, users.Create(ctx, ravi))

	name := "Asha K"
	email := " Asha.K@Example.com "
	updated, err := svc.UpdateProfile(ctx, asha.ID, ProfilePatch{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "asha.k@example.com", updated.Email)

	taken := "RAVI@example.com"
	_, err = svc.UpdateProfile(ctx, asha.ID, ProfilePatch{Email: &taken})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	bad := "nope"
	_, err = svc.UpdateProfile(ctx, asha.ID, ProfilePatch{Email: &bad})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	_, err = svc.UpdateProfile(ctx, uuid.NewString(), ProfilePatch{Name: &name})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := svc.GetUser(ctx, ravi.ID)
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", got.Email)

	_, err = svc.GetProfile(ctx, "abc")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
