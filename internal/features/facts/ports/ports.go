package ports

import (
	"context"

	"freight-engine/internal/features/facts/domain"
)

// FactStore is the read-only secondary port onto the persistent record store
// holding shipments, jobs and customs entries.
type FactStore interface {
	// ShipmentByTracking returns the shipment fact for a tracking number,
	// or domain.ErrShipmentNotFound.
	ShipmentByTracking(ctx context.Context, trackingNumber string) (*domain.ShipmentFact, error)
	// JobByTracking returns the linked cargo job, or (nil, nil) when the
	// shipment has no job yet.
	JobByTracking(ctx context.Context, trackingNumber string) (*domain.CargoJob, error)
	// CustomsDutyByTracking returns the recorded customs duty in USD,
	// or 0 when no customs entry exists.
	CustomsDutyByTracking(ctx context.Context, trackingNumber string) (float64, error)
}
