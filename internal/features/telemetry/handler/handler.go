package handler

import (
	"errors"

	"freight-engine/internal/features/telemetry/domain"
	"freight-engine/internal/features/telemetry/ports"

	"github.com/gofiber/fiber/v2"
)

// TelemetryHandler handles HTTP requests for telemetry ingestion.
type TelemetryHandler struct {
	telemetryService ports.TelemetryService
}

// NewTelemetryHandler creates a new TelemetryHandler.
func NewTelemetryHandler(telemetryService ports.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetryService: telemetryService}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// RecordResponse reports the outcome of a telemetry ingestion.
type RecordResponse struct {
	// Message summarizes the outcome.
	Message string `json:"message"`
	// GeofenceEvents is the number of zone transitions detected.
	GeofenceEvents int `json:"geofence_events"`
}

// RecordReading godoc
// @Summary Record a telemetry reading
// @Description Persists the reading, evaluates geofence transitions and environmental thresholds
// @Tags telemetry
// @Accept json
// @Produce json
// @Param reading body domain.IoTReading true "Sensor reading"
// @Success 200 {object} RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /telemetry/readings [post]
func (h *TelemetryHandler) RecordReading(c *fiber.Ctx) error {
	var reading domain.IoTReading
	if err := c.BodyParser(&reading); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	events, err := h.telemetryService.RecordReading(c.UserContext(), reading)
	if err != nil {
		if errors.Is(err, domain.ErrMissingTrackingNumber) {
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

	message := "Telemetry saved"
	if events > 0 {
		message = "Telemetry saved with geofence activity"
	}
	return c.JSON(RecordResponse{Message: message, GeofenceEvents: events})
}

// Readings godoc
// @Summary List telemetry readings for a shipment
// @Tags telemetry
// @Produce json
// @Param tracking path string true "Tracking Number"
// @Success 200 {array} domain.IoTReading
// @Failure 500 {object} ErrorResponse
// @Router /telemetry/{tracking}/readings [get]
func (h *TelemetryHandler) Readings(c *fiber.Ctx) error {
	readings, err := h.telemetryService.Readings(c.UserContext(), c.Params("tracking"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	if readings == nil {
		readings = []domain.IoTReading{}
	}
	return c.JSON(readings)
}

// GeofenceAlerts godoc
// @Summary List geofence alerts for a shipment
// @Tags telemetry
// @Produce json
// @Param tracking path string true "Tracking Number"
// @Success 200 {array} domain.GeofenceAlert
// @Failure 500 {object} ErrorResponse
// @Router /telemetry/{tracking}/geofence-alerts [get]
func (h *TelemetryHandler) GeofenceAlerts(c *fiber.Ctx) error {
	alerts, err := h.telemetryService.GeofenceAlerts(c.UserContext(), c.Params("tracking"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	if alerts == nil {
		alerts = []domain.GeofenceAlert{}
	}
	return c.JSON(alerts)
}
