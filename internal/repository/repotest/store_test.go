package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/repository"
)

func TestComplaintStoreOrderingAndPaging(t *testing.T) {
	store := NewComplaintStore()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return fixed }
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		c := &domain.Complaint{Category: domain.CategoryWaste, Status: domain.ComplaintStatusPending}
		require.NoError(t, store.Create(ctx, c))
		ids = append(ids, c.ID)
	}

	all, err := store.List(ctx, repository.ComplaintFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)

	page, err := store.List(ctx, repository.ComplaintFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)

	// Updates always advance updated_at even with a frozen clock.
	c, err := store.GetByID(ctx, ids[0])
	require.NoError(t, err)
	before := c.UpdatedAt
	require.NoError(t, store.Update(ctx, c))
	assert.True(t, c.UpdatedAt.After(before))

	_, err = store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserStoreUniqueEmail(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.User{Email: "a@example.com"}))
	assert.ErrorIs(t, store.Create(ctx, &domain.User{Email: "a@example.com"}), repository.ErrDuplicateEmail)
}
