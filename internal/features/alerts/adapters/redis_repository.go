package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/features/alerts/domain"
)

const alertsKey = "alerts:exceptions"

// RedisAlertRepository implements ports.AlertRepository using the cache adapter.
type RedisAlertRepository struct {
	cache cache.Cache
}

// NewRedisAlertRepository creates a new RedisAlertRepository.
func NewRedisAlertRepository(c cache.Cache) *RedisAlertRepository {
	return &RedisAlertRepository{cache: c}
}

// List returns every stored alert in creation order.
func (r *RedisAlertRepository) List(ctx context.Context) ([]domain.ExceptionAlert, error) {
	data, err := r.cache.Get(ctx, alertsKey)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load alerts: %w", err)
	}

	var alerts []domain.ExceptionAlert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alerts: %w", err)
	}

	return alerts, nil
}

// ReplaceAll persists the full alert collection.
func (r *RedisAlertRepository) ReplaceAll(ctx context.Context, alerts []domain.ExceptionAlert) error {
	data, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alerts: %w", err)
	}

	if err := r.cache.Set(ctx, alertsKey, data, 0); err != nil {
		return fmt.Errorf("failed to save alerts: %w", err)
	}

	return nil
}
