package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/events"
	"github.com/spec-kit/citizenloop/internal/repository"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

// Cache keys for dashboard statistics.
const (
	StatsKeyAdmin  = "admin"
	StatsKeyPublic = "public"
	StatsKeySDG    = "sdg"
)

// StatsCache stores computed statistics under an invalidation generation.
// persistence.StatsCache satisfies it.
type StatsCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, key string, generation int64, dest any) (bool, error)
	Set(ctx context.Context, key string, generation int64, value any) error
	Invalidate(ctx context.Context) error
}

// DashboardService computes complaint statistics.
type DashboardService struct {
	complaints repository.ComplaintRepository
	cache      StatsCache
	logger     *zap.Logger
}

// DashboardDependencies bundles collaborators for the dashboard service.
// Cache is optional.
type DashboardDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	Cache         StatsCache
	Logger        *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		complaints: deps.ComplaintRepo,
		cache:      deps.Cache,
		logger:     logger,
	}
}

// RegisterCacheInvalidation drops cached statistics whenever a complaint
// changes. The dispatcher is synchronous, so the drop completes before the
// mutating call returns.
func (s *DashboardService) RegisterCacheInvalidation(dispatcher events.Dispatcher) {
	if s.cache == nil || dispatcher == nil {
		return
	}
	for _, eventType := range events.ComplaintEventTypes() {
		dispatcher.Subscribe(eventType, s.invalidate)
	}
}

func (s *DashboardService) invalidate(ctx context.Context, event events.Event) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}

// AdminDashboardStats reports counts per status and category along with the
// mean resolution time in whole days. InProgress is derived by subtraction.
func (s *DashboardService) AdminDashboardStats(ctx context.Context) (*domain.AdminDashboardStats, error) {
	stats := &domain.AdminDashboardStats{}
	err := s.cached(ctx, StatsKeyAdmin, stats, func() error {
		total, err := s.complaints.Count(ctx, repository.ComplaintFilter{})
		if err != nil {
			return err
		}
		pending, err := s.countByStatus(ctx, domain.ComplaintStatusPending)
		if err != nil {
			return err
		}
		resolved, err := s.countByStatus(ctx, domain.ComplaintStatusResolved)
		if err != nil {
			return err
		}
		categories, err := s.categoryCounts(ctx)
		if err != nil {
			return err
		}
		avg, err := s.averageResolutionDays(ctx)
		if err != nil {
			return err
		}

		*stats = domain.AdminDashboardStats{
			TotalComplaints:       total,
			PendingComplaints:     pending,
			InProgressComplaints:  total - pending - resolved,
			ResolvedComplaints:    resolved,
			AverageResolutionDays: avg,
			CategoryCount:         categories,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// PublicDashboardStats reports the transparency view. SDG impact is counted
// by matching the stored label, not the category code.
func (s *DashboardService) PublicDashboardStats(ctx context.Context) (*domain.PublicDashboardStats, error) {
	stats := &domain.PublicDashboardStats{}
	err := s.cached(ctx, StatsKeyPublic, stats, func() error {
		total, err := s.complaints.Count(ctx, repository.ComplaintFilter{})
		if err != nil {
			return err
		}
		resolved, err := s.countByStatus(ctx, domain.ComplaintStatusResolved)
		if err != nil {
			return err
		}
		categories, err := s.categoryCounts(ctx)
		if err != nil {
			return err
		}
		impact := make(map[string]int64, len(domain.ComplaintCategories()))
		for _, category := range domain.ComplaintCategories() {
			label := category.SDGGoal()
			count, err := s.complaints.Count(ctx, repository.ComplaintFilter{SDGGoal: &label})
			if err != nil {
				return err
			}
			impact[label] = count
		}
		avg, err := s.averageResolutionDays(ctx)
		if err != nil {
			return err
		}

		*stats = domain.PublicDashboardStats{
			TotalComplaints:       total,
			ResolvedComplaints:    resolved,
			ResolutionRate:        resolutionRate(resolved, total),
			AverageResolutionDays: roundHalfUp(avg, 2),
			CategoryDistribution:  categories,
			SDGImpact:             impact,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// SDGStatistics reports per category the totals under its SDG label along
// with resolved and pending counts. In-progress complaints are not broken out.
func (s *DashboardService) SDGStatistics(ctx context.Context) (map[string]domain.SDGCategoryStats, error) {
	stats := map[string]domain.SDGCategoryStats{}
	err := s.cached(ctx, StatsKeySDG, &stats, func() error {
		for _, category := range domain.ComplaintCategories() {
			label := category.SDGGoal()
			complaints, err := s.complaints.List(ctx, repository.ComplaintFilter{SDGGoal: &label})
			if err != nil {
				return err
			}
			entry := domain.SDGCategoryStats{SDG: label, TotalComplaints: int64(len(complaints))}
			for _, c := range complaints {
				switch c.Status {
				case domain.ComplaintStatusResolved:
					entry.Resolved++
				case domain.ComplaintStatusPending:
					entry.Pending++
				}
			}
			stats[string(category)] = entry
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// cached serves dest from the cache when possible, otherwise runs compute and
// stores the result under the generation read before computing. A concurrent
// invalidation moves readers to a newer generation, so a result computed
// from older data is never served. Cache failures fall through to fresh
// computation.
func (s *DashboardService) cached(ctx context.Context, key string, dest any, compute func() error) error {
	useCache := s.cache != nil
	var generation int64
	if useCache {
		var err error
		generation, err = s.cache.Generation(ctx)
		if err != nil {
			s.logger.Warn("stats cache generation read failed", zap.String("key", key), zap.Error(err))
			useCache = false
		}
	}
	if useCache {
		hit, err := s.cache.Get(ctx, key, generation, dest)
		if err != nil {
			s.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return nil
		}
	}

	if err := compute(); err != nil {
		return apperrors.MapError(err)
	}

	if useCache {
		if err := s.cache.Set(ctx, key, generation, dest); err != nil {
			s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (s *DashboardService) countByStatus(ctx context.Context, status domain.ComplaintStatus) (int64, error) {
	return s.complaints.Count(ctx, repository.ComplaintFilter{Status: &status})
}

func (s *DashboardService) categoryCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(domain.ComplaintCategories()))
	for _, category := range domain.ComplaintCategories() {
		count, err := s.complaints.Count(ctx, repository.ComplaintFilter{Category: &category})
		if err != nil {
			return nil, err
		}
		counts[string(category)] = count
	}
	return counts, nil
}

// averageResolutionDays is the mean of whole elapsed days over RESOLVED
// complaints, 0 when there are none.
func (s *DashboardService) averageResolutionDays(ctx context.Context) (float64, error) {
	status := domain.ComplaintStatusResolved
	resolved, err := s.complaints.List(ctx, repository.ComplaintFilter{Status: &status})
	if err != nil {
		return 0, err
	}
	var sum, n int64
	for _, c := range resolved {
		if c.ResolvedAt == nil {
			continue
		}
		sum += wholeDays(c.CreatedAt, *c.ResolvedAt)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func wholeDays(from, to time.Time) int64 {
	return int64(to.Sub(from) / (24 * time.Hour))
}

func resolutionRate(resolved, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(resolved) / float64(total) * 100
}

func roundHalfUp(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(value*scale+0.5) / scale
}
