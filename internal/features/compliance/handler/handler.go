package handler

import (
	"errors"

	"freight-engine/internal/features/compliance/domain"
	"freight-engine/internal/features/compliance/ports"

	"github.com/gofiber/fiber/v2"
)

// ComplianceHandler handles HTTP requests for compliance screening.
type ComplianceHandler struct {
	complianceService ports.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceService ports.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// RunCheck godoc
// @Summary Run a trade-compliance check
// @Description Screens HS code, sanctioned lanes and document completeness, and estimates duties. Fail is a valid outcome, returned with 200.
// @Tags compliance
// @Accept json
// @Produce json
// @Param request body domain.CheckRequest true "Facts to screen"
// @Success 200 {object} domain.ComplianceCheck
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /compliance/checks [post]
func (h *ComplianceHandler) RunCheck(c *fiber.Ctx) error {
	var req domain.CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	check, err := h.complianceService.RunCheck(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidIncoterm) || errors.Is(err, domain.ErrInvalidCargoValue) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(check)
}

// ListChecks godoc
// @Summary List compliance check history
// @Description Returns every recorded compliance check in creation order
// @Tags compliance
// @Produce json
// @Success 200 {array} domain.ComplianceCheck
// @Failure 500 {object} ErrorResponse
// @Router /compliance/checks [get]
func (h *ComplianceHandler) ListChecks(c *fiber.Ctx) error {
	checks, err := h.complianceService.ListChecks(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	if checks == nil {
		checks = []domain.ComplianceCheck{}
	}
	return c.JSON(checks)
}
