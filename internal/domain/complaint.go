package domain

import (
	"strings"
	"time"
)

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending    ComplaintStatus = "PENDING"
	ComplaintStatusInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintStatusResolved   ComplaintStatus = "RESOLVED"
)

// ComplaintStatuses lists every status in display order.
func ComplaintStatuses() []ComplaintStatus {
	return []ComplaintStatus{ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved}
}

// Valid reports whether s is a known status.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}

// ParseComplaintStatus accepts any casing of a status token.
func ParseComplaintStatus(raw string) (ComplaintStatus, bool) {
	status := ComplaintStatus(strings.ToUpper(strings.TrimSpace(raw)))
	return status, status.Valid()
}

// ComplaintCategory is the closed set of complaint kinds.
type ComplaintCategory string

const (
	CategoryWaste       ComplaintCategory = "WASTE"
	CategoryWater       ComplaintCategory = "WATER"
	CategoryRoad        ComplaintCategory = "ROAD"
	CategoryStreetlight ComplaintCategory = "STREETLIGHT"
	CategoryHazard      ComplaintCategory = "HAZARD"
)

var sdgGoals = map[ComplaintCategory]string{
	CategoryWaste:       "SDG 11: Sustainable Cities",
	CategoryWater:       "SDG 6: Clean Water & Sanitation",
	CategoryRoad:        "SDG 9: Industry, Innovation & Infrastructure",
	CategoryStreetlight: "SDG 7: Affordable & Clean Energy",
	CategoryHazard:      "SDG 3: Good Health & Well-being",
}

// ComplaintCategories lists every category in declaration order.
func ComplaintCategories() []ComplaintCategory {
	return []ComplaintCategory{CategoryWaste, CategoryWater, CategoryRoad, CategoryStreetlight, CategoryHazard}
}

// Valid reports whether c belongs to the closed category set.
func (c ComplaintCategory) Valid() bool {
	_, ok := sdgGoals[c]
	return ok
}

// SDGGoal returns the SDG label a category reports under, or "" if unknown.
func (c ComplaintCategory) SDGGoal() string {
	return sdgGoals[c]
}

// ParseComplaintCategory accepts any casing of a category token.
func ParseComplaintCategory(raw string) (ComplaintCategory, bool) {
	category := ComplaintCategory(strings.ToUpper(strings.TrimSpace(raw)))
	return category, category.Valid()
}

// Complaint is the aggregate for citizen-submitted reports.
type Complaint struct {
	ID          string
	ComplaintID string
	OwnerID     string
	Title       string
	Description string
	Category    ComplaintCategory
	Latitude    *float64
	Longitude   *float64
	ImageURL    *string
	Status      ComplaintStatus
	SDGGoal     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ResolvedAt  *time.Time
}

// MaxDescriptionLength bounds the free-text description.
const MaxDescriptionLength = 1000
