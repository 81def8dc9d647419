// Package repotest provides in-memory repositories for tests of packages
// that depend on the repository interfaces.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/repository"
)

// ComplaintStore is an in-memory repository.ComplaintRepository.
type ComplaintStore struct {
	mu    sync.RWMutex
	items map[string]domain.Complaint
	seq   map[string]int
	next  int

	// Now stamps created_at/updated_at; defaults to time.Now.
	Now func() time.Time
	// Err, when set, is returned by every call.
	Err error
}

// NewComplaintStore returns an empty store.
func NewComplaintStore() *ComplaintStore {
	return &ComplaintStore{items: map[string]domain.Complaint{}, seq: map[string]int{}, Now: time.Now}
}

var _ repository.ComplaintRepository = (*ComplaintStore)(nil)

func (s *ComplaintStore) Create(_ context.Context, complaint *domain.Complaint) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	complaint.ID = uuid.NewString()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	s.put(*complaint)
	return nil
}

// Insert stores a complaint verbatim, keeping its timestamps. Useful for
// seeding aggregation scenarios.
func (s *ComplaintStore) Insert(complaint domain.Complaint) domain.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	if complaint.ComplaintID == "" {
		complaint.ComplaintID = "CL-SEED-" + strings.ToUpper(complaint.ID[:8])
	}
	if complaint.SDGGoal == "" {
		complaint.SDGGoal = complaint.Category.SDGGoal()
	}
	s.put(complaint)
	return cloneComplaint(complaint)
}

func (s *ComplaintStore) put(complaint domain.Complaint) {
	if _, exists := s.seq[complaint.ID]; !exists {
		s.next++
		s.seq[complaint.ID] = s.next
	}
	s.items[complaint.ID] = cloneComplaint(complaint)
}

func (s *ComplaintStore) Update(_ context.Context, complaint *domain.Complaint) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.items[complaint.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	now := s.Now()
	if !now.After(stored.UpdatedAt) {
		now = stored.UpdatedAt.Add(time.Microsecond)
	}
	complaint.UpdatedAt = now
	complaint.CreatedAt = stored.CreatedAt
	complaint.OwnerID = stored.OwnerID
	complaint.ComplaintID = stored.ComplaintID
	if complaint.ResolvedAt != nil && complaint.ResolvedAt.Before(stored.CreatedAt) {
		clamped := stored.CreatedAt
		complaint.ResolvedAt = &clamped
	}
	s.put(*complaint)
	return nil
}

func (s *ComplaintStore) Delete(_ context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.items, id)
	delete(s.seq, id)
	return nil
}

func (s *ComplaintStore) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	complaint, ok := s.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := cloneComplaint(complaint)
	return &out, nil
}

func (s *ComplaintStore) GetByPublicID(_ context.Context, complaintID string) (*domain.Complaint, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, complaint := range s.items {
		if complaint.ComplaintID == complaintID {
			out := cloneComplaint(complaint)
			return &out, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *ComplaintStore) List(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Complaint{}
	for _, complaint := range s.items {
		if matches(complaint, filter) {
			result = append(result, cloneComplaint(complaint))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return s.seq[result[i].ID] > s.seq[result[j].ID]
	})

	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		if offset >= len(result) {
			return []domain.Complaint{}, nil
		}
		end := offset + filter.Limit
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	}
	return result, nil
}

func (s *ComplaintStore) Count(ctx context.Context, filter repository.ComplaintFilter) (int64, error) {
	filter.Limit, filter.Offset = 0, 0
	items, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func matches(c domain.Complaint, f repository.ComplaintFilter) bool {
	if f.OwnerID != nil && c.OwnerID != *f.OwnerID {
		return false
	}
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.Category != nil && c.Category != *f.Category {
		return false
	}
	if f.SDGGoal != nil {
		if f.SDGGoalIgnoreCase {
			if !strings.EqualFold(c.SDGGoal, *f.SDGGoal) {
				return false
			}
		} else if c.SDGGoal != *f.SDGGoal {
			return false
		}
	}
	return true
}

func cloneComplaint(c domain.Complaint) domain.Complaint {
	if c.ResolvedAt != nil {
		resolved := *c.ResolvedAt
		c.ResolvedAt = &resolved
	}
	return c
}

// UserStore is an in-memory repository.UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	items map[string]domain.User

	Err error
}

// NewUserStore returns an empty store.
func NewUserStore() *UserStore {
	return &UserStore{items: map[string]domain.User{}}
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.items[user.ID] = *user
	return nil
}

func (s *UserStore) Update(_ context.Context, user *domain.User) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range s.items {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.UpdatedAt = time.Now()
	s.items[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.items {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.items))
	for _, user := range s.items {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}
