package ports

import (
	"context"

	"freight-engine/internal/features/billing/domain"
	ratesdomain "freight-engine/internal/features/rates/domain"
)

// CreateInvoiceRequest carries every field needed to derive an invoice.
type CreateInvoiceRequest struct {
	TrackingNumber   string `json:"tracking_number"`
	Currency         string `json:"currency"`
	Trigger          string `json:"trigger"`
	IncludeInsurance bool   `json:"include_insurance"`
	BillingPlan      string `json:"billing_plan"`
}

// RecordPaymentRequest carries every field of a payment against an invoice.
type RecordPaymentRequest struct {
	InvoiceID string               `json:"invoice_id"`
	Method    string               `json:"method"`
	Type      string               `json:"type"`
	Amount    float64              `json:"amount"`
	Currency  string               `json:"currency"`
	Status    domain.PaymentStatus `json:"status"`

	ThreeDSecure bool   `json:"three_d_secure"`
	Tokenized    bool   `json:"tokenized"`
	TwoFactor    bool   `json:"two_factor"`
	Reference    string `json:"reference"`
}

// BillingService defines the primary port for billing and settlement.
type BillingService interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*domain.PaymentTransaction, *domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	ListPayments(ctx context.Context, invoiceID string) ([]domain.PaymentTransaction, error)
	FxRates(ctx context.Context) ([]domain.FxRate, error)
	RefreshFxRates(ctx context.Context) ([]domain.FxRate, error)
}

// InvoiceRepository defines the secondary port for invoice storage.
type InvoiceRepository interface {
	// Save upserts an invoice by id.
	Save(ctx context.Context, invoice domain.Invoice) error
	// Get returns the invoice for an id, or (nil, nil).
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context) ([]domain.Invoice, error)
}

// PaymentRepository defines the secondary port for payment storage.
type PaymentRepository interface {
	Append(ctx context.Context, payment domain.PaymentTransaction) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentTransaction, error)
}

// FxRepository defines the secondary port for the FX table.
type FxRepository interface {
	All(ctx context.Context) ([]domain.FxRate, error)
	ReplaceAll(ctx context.Context, rates []domain.FxRate) error
}

// RateEngine is the rate-comparison capability invoices are derived from.
type RateEngine interface {
	QuoteRates(req ratesdomain.RateRequest) []ratesdomain.RateOption
}

// AlertSink accepts exception events decided by the billing engine.
type AlertSink interface {
	RaiseException(ctx context.Context, trackingNumber, exceptionType, severity, note string) error
}
