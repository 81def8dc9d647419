package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/persistence"
	"github.com/spec-kit/citizenloop/internal/repository"
)

const testDSNEnv = "CITIZENLOOP_TEST_POSTGRES_DSN"

func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set; skipping postgres repository tests", testDSNEnv)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrationsFrom(ctx, pool, "../../migrations", zap.NewNop()))
	return pool
}

func createUser(t *testing.T, users repository.UserRepository) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         "Repo Test",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleCitizen,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestPostgresUserRepository(t *testing.T) {
	pool := openTestPool(t)
	users := repository.NewUserRepository(pool)
	ctx := context.Background()

	user := createUser(t, users)
	assert.NotEmpty(t, user.ID)

	byEmail, err := users.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	dup := &domain.User{Name: "Dup", Email: user.Email, PasswordHash: "hash", Role: domain.RoleCitizen}
	assert.ErrorIs(t, users.Create(ctx, dup), repository.ErrDuplicateEmail)

	_, err = users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestPostgresComplaintRepository(t *testing.T) {
	pool := openTestPool(t)
	users := repository.NewUserRepository(pool)
	complaints := repository.NewComplaintRepository(pool)
	ctx := context.Background()
	owner := createUser(t, users)

	lat := 12.5
	complaint := &domain.Complaint{
		ComplaintID: "CL-TEST-" + uuid.NewString(),
		OwnerID:     owner.ID,
		Title:       "Pothole",
		Category:    domain.CategoryRoad,
		Latitude:    &lat,
		Status:      domain.ComplaintStatusPending,
		SDGGoal:     domain.CategoryRoad.SDGGoal(),
	}
	require.NoError(t, complaints.Create(ctx, complaint))
	t.Cleanup(func() { _ = complaints.Delete(context.Background(), complaint.ID) })

	got, err := complaints.GetByPublicID(ctx, complaint.ComplaintID)
	require.NoError(t, err)
	assert.Equal(t, complaint.ID, got.ID)
	require.NotNil(t, got.Latitude)
	assert.InDelta(t, lat, *got.Latitude, 1e-9)
	assert.Nil(t, got.Longitude)

	createdUpdatedAt := complaint.UpdatedAt
	resolvedAt := time.Now()
	complaint.Status = domain.ComplaintStatusResolved
	complaint.ResolvedAt = &resolvedAt
	require.NoError(t, complaints.Update(ctx, complaint))
	assert.False(t, complaint.UpdatedAt.Before(createdUpdatedAt))

	owned, err := complaints.List(ctx, repository.ComplaintFilter{OwnerID: &owner.ID})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, domain.ComplaintStatusResolved, owned[0].Status)
	require.NotNil(t, owned[0].ResolvedAt)

	status := domain.ComplaintStatusResolved
	count, err := complaints.Count(ctx, repository.ComplaintFilter{OwnerID: &owner.ID, Status: &status})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	label := "sdg 9: industry, innovation & infrastructure"
	bySDG, err := complaints.List(ctx, repository.ComplaintFilter{OwnerID: &owner.ID, SDGGoal: &label, SDGGoalIgnoreCase: true})
	require.NoError(t, err)
	assert.Len(t, bySDG, 1)

	require.NoError(t, complaints.Delete(ctx, complaint.ID))
	_, err = complaints.GetByID(ctx, complaint.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
