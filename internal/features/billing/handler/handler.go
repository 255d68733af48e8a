package handler

import (
	"errors"

	"freight-engine/internal/features/billing/domain"
	"freight-engine/internal/features/billing/ports"
	factsdomain "freight-engine/internal/features/facts/domain"

	"github.com/gofiber/fiber/v2"
)

// BillingHandler handles HTTP requests for invoicing and settlement.
type BillingHandler struct {
	billingService ports.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService ports.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// PaymentResponse pairs a recorded payment with the invoice it settles.
type PaymentResponse struct {
	Payment *domain.PaymentTransaction `json:"payment"`
	Invoice *domain.Invoice            `json:"invoice"`
}

// CreateInvoice godoc
// @Summary Issue an invoice for a shipment
// @Description Derives freight, duty and insurance charges for a shipment and issues a multi-currency invoice
// @Tags billing
// @Accept json
// @Produce json
// @Param request body ports.CreateInvoiceRequest true "Invoice to derive"
// @Success 201 {object} domain.Invoice
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /billing/invoices [post]
func (h *BillingHandler) CreateInvoice(c *fiber.Ctx) error {
	var req ports.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	invoice, err := h.billingService.CreateInvoice(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCurrency) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		}
		if errors.Is(err, factsdomain.ErrShipmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// ListInvoices godoc
// @Summary List invoices
// @Description Returns every issued invoice in creation order
// @Tags billing
// @Produce json
// @Success 200 {array} domain.Invoice
// @Failure 500 {object} ErrorResponse
// @Router /billing/invoices [get]
func (h *BillingHandler) ListInvoices(c *fiber.Ctx) error {
	invoices, err := h.billingService.ListInvoices(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return c.JSON(invoices)
}

// GetInvoice godoc
// @Summary Get an invoice
// @Description Returns one invoice by id
// @Tags billing
// @Produce json
// @Param id path string true "Invoice id"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /billing/invoices/{id} [get]
func (h *BillingHandler) GetInvoice(c *fiber.Ctx) error {
	invoice, err := h.billingService.GetInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(invoice)
}

// RecordPayment godoc
// @Summary Record a payment against an invoice
// @Description Appends a payment transaction and advances the invoice's settlement status from the cumulative settled amount
// @Tags billing
// @Accept json
// @Produce json
// @Param id path string true "Invoice id"
// @Param request body ports.RecordPaymentRequest true "Payment to record"
// @Success 201 {object} PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /billing/invoices/{id}/payments [post]
func (h *BillingHandler) RecordPayment(c *fiber.Ctx) error {
	var req ports.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}
	req.InvoiceID = c.Params("id")

	payment, invoice, err := h.billingService.RecordPayment(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) || errors.Is(err, domain.ErrInvalidPaymentStatus) || errors.Is(err, domain.ErrUnknownCurrency) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		}
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(PaymentResponse{Payment: payment, Invoice: invoice})
}

// ListPayments godoc
// @Summary List payments for an invoice
// @Description Returns the payments recorded against an invoice in order
// @Tags billing
// @Produce json
// @Param id path string true "Invoice id"
// @Success 200 {array} domain.PaymentTransaction
// @Failure 500 {object} ErrorResponse
// @Router /billing/invoices/{id}/payments [get]
func (h *BillingHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.billingService.ListPayments(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	if payments == nil {
		payments = []domain.PaymentTransaction{}
	}
	return c.JSON(payments)
}

// FxRates godoc
// @Summary Get the FX table
// @Description Returns the current conversion rates, expressed as USD per unit of currency
// @Tags billing
// @Produce json
// @Success 200 {array} domain.FxRate
// @Failure 500 {object} ErrorResponse
// @Router /billing/fx [get]
func (h *BillingHandler) FxRates(c *fiber.Ctx) error {
	rates, err := h.billingService.FxRates(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	if rates == nil {
		rates = []domain.FxRate{}
	}
	return c.JSON(rates)
}

// RefreshFxRates godoc
// @Summary Refresh the FX table
// @Description Drifts non-USD rates within the configured jitter band and returns the updated table
// @Tags billing
// @Produce json
// @Success 200 {array} domain.FxRate
// @Failure 500 {object} ErrorResponse
// @Router /billing/fx/refresh [post]
func (h *BillingHandler) RefreshFxRates(c *fiber.Ctx) error {
	rates, err := h.billingService.RefreshFxRates(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(rates)
}
