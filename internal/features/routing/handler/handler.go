package handler

import (
	"errors"

	factsdomain "freight-engine/internal/features/facts/domain"
	"freight-engine/internal/features/routing/domain"
	"freight-engine/internal/features/routing/ports"

	"github.com/gofiber/fiber/v2"
)

// RoutingHandler handles HTTP requests for route optimization.
type RoutingHandler struct {
	routingService ports.RoutingService
}

// NewRoutingHandler creates a new RoutingHandler.
func NewRoutingHandler(routingService ports.RoutingService) *RoutingHandler {
	return &RoutingHandler{routingService: routingService}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// OptimizeRequest is the optimization input.
type OptimizeRequest struct {
	TrackingNumber string          `json:"tracking_number"`
	Strategy       domain.Strategy `json:"strategy"`
}

// Optimize godoc
// @Summary Recommend a route for a shipment
// @Description Scores every mode's rate option under the strategy and records the winning plan
// @Tags routing
// @Accept json
// @Produce json
// @Param request body OptimizeRequest true "Tracking number and strategy"
// @Success 200 {object} domain.RoutePlan
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes/optimize [post]
func (h *RoutingHandler) Optimize(c *fiber.Ctx) error {
	var req OptimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	if req.TrackingNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "tracking number is required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	plan, err := h.routingService.Optimize(c.UserContext(), req.TrackingNumber, req.Strategy)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStrategy):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		case errors.Is(err, factsdomain.ErrShipmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "shipment not found",
				RayID:   c.Locals("requestid").(string),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		}
	}

	return c.JSON(plan)
}

// LatestPlan godoc
// @Summary Get the effective route plan for a shipment
// @Description Returns the most recent plan recorded for the tracking number
// @Tags routing
// @Produce json
// @Param tracking path string true "Tracking Number"
// @Success 200 {object} domain.RoutePlan
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes/{tracking} [get]
func (h *RoutingHandler) LatestPlan(c *fiber.Ctx) error {
	trackingNumber := c.Params("tracking")

	plan, err := h.routingService.LatestPlan(c.UserContext(), trackingNumber)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}
	if plan == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "no route plan recorded for tracking number",
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(plan)
}
