package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/features/routing/domain"
)

const plansKeyPrefix = "routing:plans:"

// RedisPlanRepository implements ports.PlanRepository using the cache adapter.
// Plans are stored per tracking number in creation order.
type RedisPlanRepository struct {
	cache cache.Cache
}

// NewRedisPlanRepository creates a new RedisPlanRepository.
func NewRedisPlanRepository(c cache.Cache) *RedisPlanRepository {
	return &RedisPlanRepository{cache: c}
}

// Append adds a plan to the tracking number's history.
func (r *RedisPlanRepository) Append(ctx context.Context, plan domain.RoutePlan) error {
	plans, err := r.list(ctx, plan.TrackingNumber)
	if err != nil {
		return err
	}

	plans = append(plans, plan)
	data, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("failed to marshal route plans: %w", err)
	}

	if err := r.cache.Set(ctx, plansKeyPrefix+plan.TrackingNumber, data, 0); err != nil {
		return fmt.Errorf("failed to save route plans: %w", err)
	}

	return nil
}

// Latest returns the most recent plan for a tracking number, or (nil, nil).
func (r *RedisPlanRepository) Latest(ctx context.Context, trackingNumber string) (*domain.RoutePlan, error) {
	plans, err := r.list(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}
	return &plans[len(plans)-1], nil
}

func (r *RedisPlanRepository) list(ctx context.Context, trackingNumber string) ([]domain.RoutePlan, error) {
	data, err := r.cache.Get(ctx, plansKeyPrefix+trackingNumber)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load route plans: %w", err)
	}

	var plans []domain.RoutePlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, fmt.Errorf("failed to unmarshal route plans: %w", err)
	}

	return plans, nil
}
