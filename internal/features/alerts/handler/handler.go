package handler

import (
	"errors"

	"freight-engine/internal/features/alerts/domain"
	"freight-engine/internal/features/alerts/ports"

	"github.com/gofiber/fiber/v2"
)

// AlertHandler handles HTTP requests for exception alerts.
type AlertHandler struct {
	alertService ports.AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService ports.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ListAlerts godoc
// @Summary List exception alerts
// @Description Returns every exception alert the engine has raised, in creation order
// @Tags alerts
// @Produce json
// @Success 200 {array} domain.ExceptionAlert
// @Failure 500 {object} ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) ListAlerts(c *fiber.Ctx) error {
	alerts, err := h.alertService.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	if alerts == nil {
		alerts = []domain.ExceptionAlert{}
	}
	return c.JSON(alerts)
}

// ResolveAlert godoc
// @Summary Resolve an exception alert
// @Description Marks an open alert as resolved; resolving twice is a no-op
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} domain.ExceptionAlert
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /alerts/{id}/resolve [post]
func (h *AlertHandler) ResolveAlert(c *fiber.Ctx) error {
	id := c.Params("id")

	alert, err := h.alertService.Resolve(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAlertNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "alert not found",
				RayID:   c.Locals("requestid").(string),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(alert)
}
