package ports

import (
	"context"

	ratesdomain "freight-engine/internal/features/rates/domain"
	"freight-engine/internal/features/routing/domain"
)

// RoutingService defines the primary port for route optimization.
type RoutingService interface {
	Optimize(ctx context.Context, trackingNumber string, strategy domain.Strategy) (*domain.RoutePlan, error)
	LatestPlan(ctx context.Context, trackingNumber string) (*domain.RoutePlan, error)
}

// PlanRepository defines the secondary port for route plan storage.
// Plans are append-only; the latest per tracking number is the effective one.
type PlanRepository interface {
	Append(ctx context.Context, plan domain.RoutePlan) error
	// Latest returns the most recent plan for a tracking number, or (nil, nil).
	Latest(ctx context.Context, trackingNumber string) (*domain.RoutePlan, error)
}

// RateEngine is the rate-comparison capability the optimizer scores against.
// It is a pure function of its request.
type RateEngine interface {
	QuoteRates(req ratesdomain.RateRequest) []ratesdomain.RateOption
	DistanceKm(origin, destination string) float64
}
