package ports

import (
	"context"

	"freight-engine/internal/features/compliance/domain"
)

// ComplianceService defines the primary port for compliance screening.
type ComplianceService interface {
	RunCheck(ctx context.Context, req domain.CheckRequest) (*domain.ComplianceCheck, error)
	ListChecks(ctx context.Context) ([]domain.ComplianceCheck, error)
}

// CheckRepository defines the secondary port for the append-only check history.
type CheckRepository interface {
	Append(ctx context.Context, check domain.ComplianceCheck) error
	List(ctx context.Context) ([]domain.ComplianceCheck, error)
}

// AlertSink accepts exception events decided by the compliance engine.
// Delivery mechanics are out of scope.
type AlertSink interface {
	RaiseException(ctx context.Context, trackingNumber, exceptionType, severity, note string) error
}
