package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/events"
	"github.com/spec-kit/citizenloop/internal/repository/repotest"
)

type fixture struct {
	complaints *repotest.ComplaintStore
	users      *repotest.UserStore
	dispatcher events.Dispatcher
	service    *ComplaintService
	dashboard  *DashboardService
	clock      *fakeClock
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFixture(t *testing.T, cache StatsCache) *fixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	complaints := repotest.NewComplaintStore()
	complaints.Now = clock.Now
	users := repotest.NewUserStore()
	dispatcher := events.NewInMemoryDispatcher()

	f := &fixture{
		complaints: complaints,
		users:      users,
		dispatcher: dispatcher,
		clock:      clock,
		service: NewComplaintService(ComplaintDependencies{
			ComplaintRepo: complaints,
			UserRepo:      users,
			Dispatcher:    dispatcher,
			Clock:         clock.Now,
		}),
		dashboard: NewDashboardService(DashboardDependencies{
			ComplaintRepo: complaints,
			Cache:         cache,
		}),
	}
	f.dashboard.RegisterCacheInvalidation(dispatcher)
	return f
}

func (f *fixture) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Asha", Email: email, PasswordHash: "x", Role: domain.RoleCitizen}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) submit(t *testing.T, ownerID string, category domain.ComplaintCategory) *domain.Complaint {
	t.Helper()
	c, err := f.service.Submit(context.Background(), ownerID, ComplaintSubmitInput{
		Title:       "Broken pipe",
		Description: "Water leaking on Main St",
		Category:    category,
	})
	require.NoError(t, err)
	return c
}
