package handler

import (
	"errors"

	"freight-engine/internal/features/eta/ports"
	factsdomain "freight-engine/internal/features/facts/domain"

	"github.com/gofiber/fiber/v2"
)

// EtaHandler handles HTTP requests for ETA prediction.
type EtaHandler struct {
	etaService ports.EtaService
}

// NewEtaHandler creates a new EtaHandler.
func NewEtaHandler(etaService ports.EtaService) *EtaHandler {
	return &EtaHandler{etaService: etaService}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// Predict godoc
// @Summary Recompute the ETA prediction for a shipment
// @Description Adjusts the baseline ETA by risk offsets and upserts the live prediction
// @Tags eta
// @Produce json
// @Param tracking path string true "Tracking Number"
// @Success 200 {object} domain.PredictiveEta
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /eta/{tracking}/predict [post]
func (h *EtaHandler) Predict(c *fiber.Ctx) error {
	trackingNumber := c.Params("tracking")

	eta, err := h.etaService.Predict(c.UserContext(), trackingNumber)
	if err != nil {
		if errors.Is(err, factsdomain.ErrShipmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "shipment not found",
				RayID:   c.Locals("requestid").(string),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(eta)
}

// Current godoc
// @Summary Get the live ETA prediction for a shipment
// @Description Returns the stored prediction for the tracking number
// @Tags eta
// @Produce json
// @Param tracking path string true "Tracking Number"
// @Success 200 {object} domain.PredictiveEta
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /eta/{tracking} [get]
func (h *EtaHandler) Current(c *fiber.Ctx) error {
	trackingNumber := c.Params("tracking")

	eta, err := h.etaService.Current(c.UserContext(), trackingNumber)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}
	if eta == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "no prediction recorded for tracking number",
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(eta)
}
