package dto

import "github.com/spec-kit/citizenloop/internal/domain"

// AdminStatsResponse is the admin dashboard payload.
type AdminStatsResponse struct {
	TotalComplaints       int64            `json:"total_complaints"`
	PendingComplaints     int64            `json:"pending_complaints"`
	InProgressComplaints  int64            `json:"in_progress_complaints"`
	ResolvedComplaints    int64            `json:"resolved_complaints"`
	AverageResolutionDays float64          `json:"average_resolution_days"`
	CategoryCount         map[string]int64 `json:"category_count"`
}

// PublicStatsResponse is the transparency dashboard payload.
type PublicStatsResponse struct {
	TotalComplaints       int64            `json:"total_complaints"`
	ResolvedComplaints    int64            `json:"resolved_complaints"`
	ResolutionRate        float64          `json:"resolution_rate"`
	AverageResolutionDays float64          `json:"average_resolution_days"`
	CategoryDistribution  map[string]int64 `json:"category_distribution"`
	SDGImpact             map[string]int64 `json:"sdg_impact"`
}

// SDGStatsResponse is one entry of the SDG analytics payload.
type SDGStatsResponse struct {
	SDG             string `json:"sdg"`
	TotalComplaints int64  `json:"total_complaints"`
	Resolved        int64  `json:"resolved"`
	Pending         int64  `json:"pending"`
}

// NewAdminStatsResponse maps admin dashboard statistics.
func NewAdminStatsResponse(s *domain.AdminDashboardStats) AdminStatsResponse {
	return AdminStatsResponse{
		TotalComplaints:       s.TotalComplaints,
		PendingComplaints:     s.PendingComplaints,
		InProgressComplaints:  s.InProgressComplaints,
		ResolvedComplaints:    s.ResolvedComplaints,
		AverageResolutionDays: s.AverageResolutionDays,
		CategoryCount:         s.CategoryCount,
	}
}

// NewPublicStatsResponse maps the public transparency statistics.
func NewPublicStatsResponse(s *domain.PublicDashboardStats) PublicStatsResponse {
	return PublicStatsResponse{
		TotalComplaints:       s.TotalComplaints,
		ResolvedComplaints:    s.ResolvedComplaints,
		ResolutionRate:        s.ResolutionRate,
		AverageResolutionDays: s.AverageResolutionDays,
		CategoryDistribution:  s.CategoryDistribution,
		SDGImpact:             s.SDGImpact,
	}
}

// NewSDGStatsResponse keys entries by category code.
func NewSDGStatsResponse(stats map[string]domain.SDGCategoryStats) map[string]SDGStatsResponse {
	out := make(map[string]SDGStatsResponse, len(stats))
	for category, s := range stats {
		out[category] = SDGStatsResponse{
			SDG:             s.SDG,
			TotalComplaints: s.TotalComplaints,
			Resolved:        s.Resolved,
			Pending:         s.Pending,
		}
	}
	return out
}
