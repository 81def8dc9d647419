package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizenloop/internal/api/dto"
	"github.com/spec-kit/citizenloop/internal/service"
)

// AdminHandler exposes complaint triage, statistics and user lookups.
type AdminHandler struct {
	complaints *service.ComplaintService
	dashboard  *service.DashboardService
	users      *service.UserService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(complaints *service.ComplaintService, dashboard *service.DashboardService, users *service.UserService) *AdminHandler {
	return &AdminHandler{complaints: complaints, dashboard: dashboard, users: users}
}

// ListComplaints GET /api/admin/complaints.
func (h *AdminHandler) ListComplaints(c *fiber.Ctx) error {
	complaints, err := h.complaints.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(complaintList(complaints))
}

// ListByStatus GET /api/admin/complaints/status/:status.
func (h *AdminHandler) ListByStatus(c *fiber.Ctx) error {
	status, err := parseStatus(c.Params("status"))
	if err != nil {
		return err
	}
	complaints, err := h.complaints.ListByStatus(c.UserContext(), status)
	if err != nil {
		return err
	}
	resp := complaintList(complaints)
	resp["status"] = status
	return c.JSON(resp)
}

// ListByCategory GET /api/admin/complaints/category/:category.
func (h *AdminHandler) ListByCategory(c *fiber.Ctx) error {
	category, err := parseCategory(c.Params("category"))
	if err != nil {
		return err
	}
	complaints, err := h.complaints.ListByCategory(c.UserContext(), category)
	if err != nil {
		return err
	}
	resp := complaintList(complaints)
	resp["category"] = category
	return c.JSON(resp)
}

// ListByCategoryAndStatus GET /api/admin/complaints/category/:category/status/:status.
func (h *AdminHandler) ListByCategoryAndStatus(c *fiber.Ctx) error {
	category, err := parseCategory(c.Params("category"))
	if err != nil {
		return err
	}
	status, err := parseStatus(c.Params("status"))
	if err != nil {
		return err
	}
	complaints, err := h.complaints.ListByCategoryAndStatus(c.UserContext(), category, status)
	if err != nil {
		return err
	}
	resp := complaintList(complaints)
	resp["category"] = category
	resp["status"] = status
	return c.JSON(resp)
}

// UpdateStatus PUT /api/admin/complaint/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return err
	}
	complaint, err := h.complaints.Transition(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Complaint status updated successfully",
		"complaint": dto.NewComplaintResponse(complaint),
	})
}

// PatchComplaint PATCH /api/admin/complaint/:id.
func (h *AdminHandler) PatchComplaint(c *fiber.Ctx) error {
	var req dto.PatchComplaintRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	patch := service.ComplaintPatch{Title: req.Title, Description: req.Description}
	if req.Category != nil {
		category, err := parseCategory(*req.Category)
		if err != nil {
			return err
		}
		patch.Category = &category
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return err
		}
		patch.Status = &status
	}

	complaint, err := h.complaints.UpdateFields(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Complaint updated successfully",
		"complaint": dto.NewComplaintResponse(complaint),
	})
}

// DashboardStats GET /api/admin/dashboard/stats.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.dashboard.AdminDashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "stats": dto.NewAdminStatsResponse(stats)})
}

// ListUsers GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"users":   dto.NewUserResponses(users),
		"count":   len(users),
	})
}

// GetUser GET /api/admin/users/:userId.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "user": dto.NewUserResponse(user)})
}

// ListUserComplaints GET /api/admin/users/:userId/complaints.
func (h *AdminHandler) ListUserComplaints(c *fiber.Ctx) error {
	complaints, err := h.complaints.GetByOwner(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	resp := complaintList(complaints)
	resp["user_id"] = c.Params("userId")
	return c.JSON(resp)
}
