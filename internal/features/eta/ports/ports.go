package ports

import (
	"context"

	"freight-engine/internal/features/eta/domain"
)

// EtaService defines the primary port for ETA prediction.
type EtaService interface {
	Predict(ctx context.Context, trackingNumber string) (*domain.PredictiveEta, error)
	Current(ctx context.Context, trackingNumber string) (*domain.PredictiveEta, error)
}

// EtaRepository defines the secondary port for prediction storage.
// Predictions are keyed by tracking number and upserted, never appended.
type EtaRepository interface {
	Upsert(ctx context.Context, eta domain.PredictiveEta) error
	// Get returns the live prediction for a tracking number, or (nil, nil).
	Get(ctx context.Context, trackingNumber string) (*domain.PredictiveEta, error)
}
