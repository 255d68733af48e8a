package handler

import (
	"freight-engine/internal/features/rates/domain"
	"freight-engine/internal/features/rates/service"

	"github.com/gofiber/fiber/v2"
)

// RateHandler handles HTTP requests for rate comparison.
type RateHandler struct {
	rateService *service.RateService
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateService *service.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// QuoteRates godoc
// @Summary Compare rates across transport modes
// @Description Prices a shipment across Air, Sea and Road and returns the options sorted ascending by price
// @Tags rates
// @Accept json
// @Produce json
// @Param request body domain.RateRequest true "Shipment tuple to price"
// @Success 200 {array} domain.RateOption
// @Failure 400 {object} ErrorResponse
// @Router /rates/quote [post]
func (h *RateHandler) QuoteRates(c *fiber.Ctx) error {
	var req domain.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(h.rateService.QuoteRates(req))
}
