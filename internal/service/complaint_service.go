package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/events"
	"github.com/spec-kit/citizenloop/internal/observability"
	"github.com/spec-kit/citizenloop/internal/repository"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

// PublicIDPrefix marks citizen-facing complaint identifiers.
const PublicIDPrefix = "CL-"

// ComplaintService coordinates the complaint lifecycle.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	now        func() time.Time
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
	Metrics       *observability.Metrics
	Clock         func() time.Time
}

// ComplaintSubmitInput describes a complaint submission. Status is accepted
// only so that callers can pass it through; it is always overridden.
type ComplaintSubmitInput struct {
	Title       string
	Description string
	Category    domain.ComplaintCategory
	Latitude    *float64
	Longitude   *float64
	ImageURL    *string
	Status      domain.ComplaintStatus
}

// ComplaintPatch is a field-level merge; nil fields are left unchanged.
type ComplaintPatch struct {
	Title       *string
	Description *string
	Category    *domain.ComplaintCategory
	Status      *domain.ComplaintStatus
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		now:        clock,
	}
}

// Submit files a new complaint on behalf of ownerID.
func (s *ComplaintService) Submit(ctx context.Context, ownerID string, input ComplaintSubmitInput) (*domain.Complaint, error) {
	owner, err := s.loadUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !input.Category.Valid() {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": string(input.Category)})
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validateCoordinate("latitude", input.Latitude); err != nil {
		return nil, err
	}
	if err := validateCoordinate("longitude", input.Longitude); err != nil {
		return nil, err
	}

	complaint := &domain.Complaint{
		ComplaintID: generateComplaintID(s.now()),
		OwnerID:     owner.ID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ImageURL:    trimOptional(input.ImageURL),
		Status:      domain.ComplaintStatusPending,
		SDGGoal:     input.Category.SDGGoal(),
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.metrics.RecordSubmission(complaint.Category)
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: complaint.ComplaintID,
		ActorID:     owner.ID,
		Payload: events.ComplaintSubmittedPayload{
			OwnerID:  owner.ID,
			Category: complaint.Category,
			SDGGoal:  complaint.SDGGoal,
			Title:    complaint.Title,
		},
	})
	return complaint, nil
}

// Transition moves a complaint to newStatus. Any state may follow any other.
// Entering RESOLVED stamps ResolvedAt; leaving RESOLVED keeps the previous
// stamp.
func (s *ComplaintService) Transition(ctx context.Context, ref string, newStatus domain.ComplaintStatus) (*domain.Complaint, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(newStatus)})
	}
	complaint, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	oldStatus := complaint.Status
	s.applyStatus(complaint, newStatus)

	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.statusChanged(ctx, complaint, oldStatus)
	return complaint, nil
}

// UpdateFields merges the non-nil fields of patch into the complaint.
// A category change keeps the stored SDG label.
func (s *ComplaintService) UpdateFields(ctx context.Context, ref string, patch ComplaintPatch) (*domain.Complaint, error) {
	complaint, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	oldStatus := complaint.Status
	var fields []string

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title must not be empty", nil)
		}
		complaint.Title = title
		fields = append(fields, "title")
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return nil, err
		}
		complaint.Description = strings.TrimSpace(*patch.Description)
		fields = append(fields, "description")
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": string(*patch.Category)})
		}
		complaint.Category = *patch.Category
		fields = append(fields, "category")
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(*patch.Status)})
		}
		s.applyStatus(complaint, *patch.Status)
		fields = append(fields, "status")
	}

	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintUpdated,
		ComplaintID: complaint.ComplaintID,
		Payload:     events.ComplaintUpdatedPayload{Fields: fields},
	})
	if patch.Status != nil {
		s.statusChanged(ctx, complaint, oldStatus)
	}
	return complaint, nil
}

// GetByOwner returns every complaint filed by userID.
func (s *ComplaintService) GetByOwner(ctx context.Context, userID string) ([]domain.Complaint, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ComplaintFilter{OwnerID: &userID})
}

// TrackForOwner returns a complaint only when userID owns it.
func (s *ComplaintService) TrackForOwner(ctx context.Context, userID, ref string) (*domain.Complaint, error) {
	complaint, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if complaint.OwnerID != userID {
		return nil, apperrors.NewForbidden("complaint belongs to another user")
	}
	return complaint, nil
}

// GetByPublicID looks a complaint up by its citizen-facing identifier.
func (s *ComplaintService) GetByPublicID(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByPublicID(ctx, strings.TrimSpace(complaintID))
	if err != nil {
		return nil, complaintLookupError(err, complaintID)
	}
	return complaint, nil
}

// GetByID looks a complaint up by internal id or, for CL- values, public id.
func (s *ComplaintService) GetByID(ctx context.Context, ref string) (*domain.Complaint, error) {
	return s.resolve(ctx, ref)
}

// ListAll returns every complaint, newest first.
func (s *ComplaintService) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return s.list(ctx, repository.ComplaintFilter{})
}

// ListByStatus returns complaints in the given status.
func (s *ComplaintService) ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}
	return s.list(ctx, repository.ComplaintFilter{Status: &status})
}

// ListByCategory returns complaints filed under category.
func (s *ComplaintService) ListByCategory(ctx context.Context, category domain.ComplaintCategory) ([]domain.Complaint, error) {
	if !category.Valid() {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": string(category)})
	}
	return s.list(ctx, repository.ComplaintFilter{Category: &category})
}

// ListByCategoryAndStatus combines the category and status filters.
func (s *ComplaintService) ListByCategoryAndStatus(ctx context.Context, category domain.ComplaintCategory, status domain.ComplaintStatus) ([]domain.Complaint, error) {
	if !category.Valid() {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": string(category)})
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}
	return s.list(ctx, repository.ComplaintFilter{Category: &category, Status: &status})
}

// ListResolved returns complaints currently in RESOLVED status.
func (s *ComplaintService) ListResolved(ctx context.Context) ([]domain.Complaint, error) {
	status := domain.ComplaintStatusResolved
	return s.list(ctx, repository.ComplaintFilter{Status: &status})
}

// ListBySDGGoal matches the SDG label case-insensitively.
func (s *ComplaintService) ListBySDGGoal(ctx context.Context, sdgGoal string) ([]domain.Complaint, error) {
	label := strings.TrimSpace(sdgGoal)
	if label == "" {
		return nil, apperrors.NewValidationError("sdg goal is required", nil)
	}
	return s.list(ctx, repository.ComplaintFilter{SDGGoal: &label, SDGGoalIgnoreCase: true})
}

// Delete removes a complaint. It is not exposed over HTTP.
func (s *ComplaintService) Delete(ctx context.Context, ref string) error {
	complaint, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := s.complaints.Delete(ctx, complaint.ID); err != nil {
		return complaintLookupError(err, ref)
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintDeleted,
		ComplaintID: complaint.ComplaintID,
	})
	return nil
}

func (s *ComplaintService) applyStatus(complaint *domain.Complaint, status domain.ComplaintStatus) {
	complaint.Status = status
	if status == domain.ComplaintStatusResolved {
		resolvedAt := s.now()
		complaint.ResolvedAt = &resolvedAt
	}
}

func (s *ComplaintService) statusChanged(ctx context.Context, complaint *domain.Complaint, oldStatus domain.ComplaintStatus) {
	s.metrics.RecordTransition(complaint.Status)
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ComplaintID,
		Payload: events.ComplaintStatusChangedPayload{
			OwnerID:   complaint.OwnerID,
			OldStatus: oldStatus,
			NewStatus: complaint.Status,
		},
	})
}

func (s *ComplaintService) resolve(ctx context.Context, ref string) (*domain.Complaint, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, PublicIDPrefix) {
		return s.GetByPublicID(ctx, ref)
	}
	if _, err := uuid.Parse(ref); err != nil {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": ref})
	}
	complaint, err := s.complaints.GetByID(ctx, ref)
	if err != nil {
		return nil, complaintLookupError(err, ref)
	}
	return complaint, nil
}

func (s *ComplaintService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *ComplaintService) list(ctx context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	complaints, err := s.complaints.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now().UTC()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func complaintLookupError(err error, ref string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("complaint", map[string]any{"id": ref})
	}
	return apperrors.MapError(err)
}

// generateComplaintID builds CL-<unix millis>-<12 hex chars>. The time part
// keeps ids roughly chronological, the random part comes from a v4 UUID.
func generateComplaintID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return PublicIDPrefix + strconv.FormatInt(now.UnixMilli(), 10) + "-" + strings.ToUpper(random[:12])
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(strings.TrimSpace(description)) > domain.MaxDescriptionLength {
		return apperrors.NewValidationError("description is too long", map[string]any{"max": domain.MaxDescriptionLength})
	}
	return nil
}

func validateCoordinate(field string, value *float64) error {
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return apperrors.NewValidationError(field+" must be a finite number", nil)
	}
	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
