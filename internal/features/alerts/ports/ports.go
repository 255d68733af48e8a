package ports

import (
	"context"

	"freight-engine/internal/features/alerts/domain"
)

// AlertService defines the primary port for exception alert operations.
type AlertService interface {
	Raise(ctx context.Context, trackingNumber string, exceptionType domain.ExceptionType, severity domain.Severity, note string) (*domain.ExceptionAlert, error)
	List(ctx context.Context) ([]domain.ExceptionAlert, error)
	Resolve(ctx context.Context, id string) (*domain.ExceptionAlert, error)
}

// AlertRepository defines the secondary port for exception alert storage.
type AlertRepository interface {
	// List returns every stored alert in creation order.
	List(ctx context.Context) ([]domain.ExceptionAlert, error)
	// ReplaceAll persists the full alert collection.
	ReplaceAll(ctx context.Context, alerts []domain.ExceptionAlert) error
}
