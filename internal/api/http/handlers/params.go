package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/citizenloop/internal/api/dto"
	"github.com/spec-kit/citizenloop/internal/domain"
	apperrors "github.com/spec-kit/citizenloop/pkg/util/errorutil"
)

func parseStatus(raw string) (domain.ComplaintStatus, error) {
	status, ok := domain.ParseComplaintStatus(raw)
	if !ok {
		return "", apperrors.NewValidationError("invalid status", map[string]any{"status": raw})
	}
	return status, nil
}

func parseCategory(raw string) (domain.ComplaintCategory, error) {
	category, ok := domain.ParseComplaintCategory(raw)
	if !ok {
		return "", apperrors.NewValidationError("invalid category", map[string]any{"category": raw})
	}
	return category, nil
}

func complaintList(complaints []domain.Complaint) fiber.Map {
	return fiber.Map{
		"success":    true,
		"complaints": dto.NewComplaintResponses(complaints),
		"count":      len(complaints),
	}
}
