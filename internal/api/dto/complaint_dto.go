package dto

import (
	"time"

	"github.com/spec-kit/citizenloop/internal/domain"
)

// CreateComplaintRequest payload. Status is read but always overridden.
type CreateComplaintRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=1000"`
	Category    string   `json:"category" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=2048"`
	Status      string   `json:"status"`
}

// UpdateStatusRequest payload for status transitions.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PatchComplaintRequest payload for administrative edits.
type PatchComplaintRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

// ComplaintResponse is the API view of a complaint.
type ComplaintResponse struct {
	ID          string                   `json:"id"`
	ComplaintID string                   `json:"complaint_id"`
	UserID      string                   `json:"user_id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Category    domain.ComplaintCategory `json:"category"`
	Latitude    *float64                 `json:"latitude"`
	Longitude   *float64                 `json:"longitude"`
	ImageURL    *string                  `json:"image_url"`
	Status      domain.ComplaintStatus   `json:"status"`
	SDGGoal     string                   `json:"sdg_goal"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	ResolvedAt  *time.Time               `json:"resolved_at"`
}

// ComplaintStatusResponse is the citizen tracking view.
type ComplaintStatusResponse struct {
	ComplaintID string                   `json:"complaint_id"`
	Status      domain.ComplaintStatus   `json:"status"`
	Title       string                   `json:"title"`
	Category    domain.ComplaintCategory `json:"category"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	ResolvedAt  *time.Time               `json:"resolved_at"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          c.ID,
		ComplaintID: c.ComplaintID,
		UserID:      c.OwnerID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		ImageURL:    c.ImageURL,
		Status:      c.Status,
		SDGGoal:     c.SDGGoal,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		ResolvedAt:  c.ResolvedAt,
	}
}

// NewComplaintResponses maps a slice of complaints.
func NewComplaintResponses(complaints []domain.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		out = append(out, NewComplaintResponse(&complaints[i]))
	}
	return out
}

// NewComplaintStatusResponse maps the tracking view.
func NewComplaintStatusResponse(c *domain.Complaint) ComplaintStatusResponse {
	return ComplaintStatusResponse{
		ComplaintID: c.ComplaintID,
		Status:      c.Status,
		Title:       c.Title,
		Category:    c.Category,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		ResolvedAt:  c.ResolvedAt,
	}
}
