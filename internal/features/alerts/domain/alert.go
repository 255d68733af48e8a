package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ExceptionType classifies an operational exception raised by the engine.
type ExceptionType string

const (
	ExceptionTypeDelay             ExceptionType = "Delay"
	ExceptionTypeCustomsHold       ExceptionType = "Customs Hold"
	ExceptionTypeTemperatureBreach ExceptionType = "Temperature Breach"
	ExceptionTypeGeofenceExit      ExceptionType = "Geofence Exit"
	ExceptionTypeComplianceFailure ExceptionType = "Compliance Failure"
	ExceptionTypePaymentPending    ExceptionType = "Payment Pending"
)

// Severity grades how urgently an exception needs attention.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// AlertStatus is the lifecycle state of an exception alert.
type AlertStatus string

const (
	AlertStatusOpen     AlertStatus = "Open"
	AlertStatusResolved AlertStatus = "Resolved"
)

var (
	// ErrInvalidExceptionType is returned for an unrecognised exception type.
	ErrInvalidExceptionType = errors.New("invalid exception type")
	// ErrAlertNotFound is returned when no alert exists for an id.
	ErrAlertNotFound = errors.New("alert not found")
)

// ExceptionAlert is an exception record the engine decided to raise.
// Delivery (push/SMS/email) is the notification layer's concern.
type ExceptionAlert struct {
	ID             string        `json:"id"`
	TrackingNumber string        `json:"tracking_number"`
	Type           ExceptionType `json:"type"`
	Severity       Severity      `json:"severity"`
	Status         AlertStatus   `json:"status"`
	Note           string        `json:"note,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	ResolvedAt     *time.Time    `json:"resolved_at,omitempty"`
}

var validTypes = map[ExceptionType]bool{
	ExceptionTypeDelay:             true,
	ExceptionTypeCustomsHold:       true,
	ExceptionTypeTemperatureBreach: true,
	ExceptionTypeGeofenceExit:      true,
	ExceptionTypeComplianceFailure: true,
	ExceptionTypePaymentPending:    true,
}

// NewExceptionAlert creates an open alert and validates the exception type.
func NewExceptionAlert(trackingNumber string, exceptionType ExceptionType, severity Severity, note string, now time.Time) (*ExceptionAlert, error) {
	if !validTypes[exceptionType] {
		return nil, ErrInvalidExceptionType
	}

	return &ExceptionAlert{
		ID:             uuid.NewString(),
		TrackingNumber: trackingNumber,
		Type:           exceptionType,
		Severity:       severity,
		Status:         AlertStatusOpen,
		Note:           note,
		CreatedAt:      now,
	}, nil
}
