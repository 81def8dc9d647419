package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizenloop/internal/api/dto"
	"github.com/spec-kit/citizenloop/internal/auth"
	"github.com/spec-kit/citizenloop/internal/domain"
	"github.com/spec-kit/citizenloop/internal/service"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

// CitizenHandler manages complaint submission, tracking and profiles.
type CitizenHandler struct {
	complaints *service.ComplaintService
	users      *service.UserService
}

// NewCitizenHandler constructs handler.
func NewCitizenHandler(complaints *service.ComplaintService, users *service.UserService) *CitizenHandler {
	return &CitizenHandler{complaints: complaints, users: users}
}

// SubmitComplaint POST /api/citizen/:userId/complaints.
func (h *CitizenHandler) SubmitComplaint(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	category, err := parseCategory(req.Category)
	if err != nil {
		return err
	}

	complaint, err := h.complaints.Submit(c.UserContext(), c.Params("userId"), service.ComplaintSubmitInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		Status:      domain.ComplaintStatus(req.Status),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "Complaint submitted successfully",
		"complaint_id": complaint.ComplaintID,
		"complaint":    dto.NewComplaintResponse(complaint),
	})
}

// ListComplaints GET /api/citizen/:userId/complaints.
func (h *CitizenHandler) ListComplaints(c *fiber.Ctx) error {
	complaints, err := h.complaints.GetByOwner(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(complaintList(complaints))
}

// TrackStatus GET /api/citizen/:userId/complaints/:complaintId/status.
func (h *CitizenHandler) TrackStatus(c *fiber.Ctx) error {
	complaint, err := h.complaints.TrackForOwner(c.UserContext(), c.Params("userId"), c.Params("complaintId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"tracking": dto.NewComplaintStatusResponse(complaint),
	})
}

// GetComplaint GET /api/citizen/complaint/:complaintId. Citizens see only
// their own complaints; administrators see any.
func (h *CitizenHandler) GetComplaint(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var (
		complaint *domain.Complaint
		err       error
	)
	if principal.User.IsAdmin() {
		complaint, err = h.complaints.GetByID(c.UserContext(), c.Params("complaintId"))
	} else {
		complaint, err = h.complaints.TrackForOwner(c.UserContext(), principal.User.ID, c.Params("complaintId"))
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"complaint": dto.NewComplaintResponse(complaint),
	})
}

// GetProfile GET /api/citizen/:userId/profile.
func (h *CitizenHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.users.GetProfile(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(user)})
}

// UpdateProfile PUT /api/citizen/:userId/profile.
func (h *CitizenHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, err := h.users.UpdateProfile(c.UserContext(), c.Params("userId"), service.ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}
