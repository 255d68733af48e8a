package domain

import (
	"errors"
	"time"
)

// InvoiceStatus is the settlement state of an invoice. Transitions are
// forward-only: Issued -> Partially Paid -> Paid.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "Draft"
	InvoiceStatusIssued        InvoiceStatus = "Issued"
	InvoiceStatusPartiallyPaid InvoiceStatus = "Partially Paid"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
)

// PaymentStatus is the processing state of a payment transaction.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "Pending"
	PaymentStatusAuthorized PaymentStatus = "Authorized"
	PaymentStatusSettled    PaymentStatus = "Settled"
	PaymentStatusFailed     PaymentStatus = "Failed"
)

var (
	// ErrInvoiceNotFound is returned when no invoice exists for an id.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrInvalidAmount is returned for a non-positive payment amount.
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")
	// ErrUnknownCurrency is returned when a currency is missing from the FX table.
	ErrUnknownCurrency = errors.New("currency not present in FX table")
	// ErrInvalidPaymentStatus is returned for an unrecognised payment status.
	ErrInvalidPaymentStatus = errors.New("payment status must be one of Pending, Authorized, Settled, Failed")
)

// Invoice is a multi-currency billing record derived from rate and
// compliance output. Amounts are stored both USD-normalized and in the
// invoice currency.
type Invoice struct {
	ID             string `json:"id"`
	TrackingNumber string `json:"tracking_number"`
	Currency       string `json:"currency"`

	FreightAmount   float64 `json:"freight_amount"`
	DutyAmount      float64 `json:"duty_amount"`
	InsuranceAmount float64 `json:"insurance_amount"`
	TotalAmount     float64 `json:"total_amount"`

	FreightUsd   float64 `json:"freight_usd"`
	DutyUsd      float64 `json:"duty_usd"`
	InsuranceUsd float64 `json:"insurance_usd"`
	TotalUsd     float64 `json:"total_usd"`

	Status      InvoiceStatus `json:"status"`
	Trigger     string        `json:"trigger"`
	BillingPlan string        `json:"billing_plan,omitempty"`
	IssuedAt    time.Time     `json:"issued_at"`
	DueAt       time.Time     `json:"due_at"`
}

// PaymentTransaction records one payment against an invoice.
type PaymentTransaction struct {
	ID        string        `json:"id"`
	InvoiceID string        `json:"invoice_id"`
	Method    string        `json:"method"`
	Type      string        `json:"type"`
	Amount    float64       `json:"amount"`
	Currency  string        `json:"currency"`
	AmountUsd float64       `json:"amount_usd"`
	Status    PaymentStatus `json:"status"`

	ThreeDSecure bool `json:"three_d_secure"`
	Tokenized    bool `json:"tokenized"`
	TwoFactor    bool `json:"two_factor"`

	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FxRate is a currency's conversion rate, expressed as USD per 1 unit of the
// currency. USD is always exactly 1.
type FxRate struct {
	Currency  string    `json:"currency"`
	RateToUsd float64   `json:"rate_to_usd"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidatePaymentStatus checks a payment status against the supported set.
func ValidatePaymentStatus(s PaymentStatus) error {
	switch s {
	case PaymentStatusPending, PaymentStatusAuthorized, PaymentStatusSettled, PaymentStatusFailed:
		return nil
	default:
		return ErrInvalidPaymentStatus
	}
}
