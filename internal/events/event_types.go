package events

import (
	"time"

	"github.com/spec-kit/citizenloop/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintSubmitted     EventType = "complaint_submitted"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventComplaintUpdated       EventType = "complaint_updated"
	EventComplaintDeleted       EventType = "complaint_deleted"
)

// ComplaintEventTypes lists every event that changes complaint data.
func ComplaintEventTypes() []EventType {
	return []EventType{EventComplaintSubmitted, EventComplaintStatusChanged, EventComplaintUpdated, EventComplaintDeleted}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	ActorID     string      `json:"actor_id,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintSubmittedPayload payload.
type ComplaintSubmittedPayload struct {
	OwnerID  string                   `json:"owner_id"`
	Category domain.ComplaintCategory `json:"category"`
	SDGGoal  string                   `json:"sdg_goal"`
	Title    string                   `json:"title"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OwnerID   string                 `json:"owner_id"`
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}

// ComplaintUpdatedPayload lists the fields an administrative edit touched.
type ComplaintUpdatedPayload struct {
	Fields []string `json:"fields"`
}
