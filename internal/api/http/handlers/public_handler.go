package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizenloop/internal/api/dto"
	"github.com/spec-kit/citizenloop/internal/service"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

// PublicHandler serves the read-only transparency endpoints.
type PublicHandler struct {
	complaints *service.ComplaintService
	dashboard  *service.DashboardService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(complaints *service.ComplaintService, dashboard *service.DashboardService) *PublicHandler {
	return &PublicHandler{complaints: complaints, dashboard: dashboard}
}

// DashboardStats GET /api/public/dashboard/stats.
func (h *PublicHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.dashboard.PublicDashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "stats": dto.NewPublicStatsResponse(stats)})
}

// ResolvedComplaints GET /api/public/complaints/resolved.
func (h *PublicHandler) ResolvedComplaints(c *fiber.Ctx) error {
	complaints, err := h.complaints.ListResolved(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(complaintList(complaints))
}

// AllComplaints serves GET /api/public/complaints/all and /complaints/map.
func (h *PublicHandler) AllComplaints(c *fiber.Ctx) error {
	complaints, err := h.complaints.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(complaintList(complaints))
}

// ComplaintsBySDG GET /api/public/complaints/sdg/:sdgGoal.
func (h *PublicHandler) ComplaintsBySDG(c *fiber.Ctx) error {
	goal, err := url.PathUnescape(c.Params("sdgGoal"))
	if err != nil {
		return apperrors.NewValidationError("invalid sdg goal", nil)
	}
	complaints, err := h.complaints.ListBySDGGoal(c.UserContext(), goal)
	if err != nil {
		return err
	}
	resp := complaintList(complaints)
	resp["sdg_goal"] = goal
	return c.JSON(resp)
}

// SDGAnalytics GET /api/public/sdg-analytics.
func (h *PublicHandler) SDGAnalytics(c *fiber.Ctx) error {
	stats, err := h.dashboard.SDGStatistics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "sdg_impact": dto.NewSDGStatsResponse(stats)})
}

// Health GET /api/public/health.
func (h *PublicHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "message": "CitizenLoop public API is running"})
}
