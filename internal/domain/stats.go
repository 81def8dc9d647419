package domain

// AdminDashboardStats summarises complaint handling for administrators.
// InProgress is derived as Total - Pending - Resolved.
type AdminDashboardStats struct {
	TotalComplaints       int64
	PendingComplaints     int64
	InProgressComplaints  int64
	ResolvedComplaints    int64
	AverageResolutionDays float64
	CategoryCount         map[string]int64
}

// PublicDashboardStats is the transparency view shown to everyone.
type PublicDashboardStats struct {
	TotalComplaints       int64
	ResolvedComplaints    int64
	ResolutionRate        float64
	AverageResolutionDays float64
	CategoryDistribution  map[string]int64
	SDGImpact             map[string]int64
}

// SDGCategoryStats reports one category under its SDG label.
type SDGCategoryStats struct {
	SDG             string
	TotalComplaints int64
	Resolved        int64
	Pending         int64
}
