package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/features/compliance/domain"
)

const checksKey = "compliance:checks"

// RedisCheckRepository implements ports.CheckRepository using the cache adapter.
// The history is append-only; records are never modified after creation.
type RedisCheckRepository struct {
	cache cache.Cache
}

// NewRedisCheckRepository creates a new RedisCheckRepository.
func NewRedisCheckRepository(c cache.Cache) *RedisCheckRepository {
	return &RedisCheckRepository{cache: c}
}

// Append adds a check to the history.
func (r *RedisCheckRepository) Append(ctx context.Context, check domain.ComplianceCheck) error {
	checks, err := r.List(ctx)
	if err != nil {
		return err
	}

	checks = append(checks, check)
	data, err := json.Marshal(checks)
	if err != nil {
		return fmt.Errorf("failed to marshal compliance checks: %w", err)
	}

	if err := r.cache.Set(ctx, checksKey, data, 0); err != nil {
		return fmt.Errorf("failed to save compliance checks: %w", err)
	}

	return nil
}

// List returns the check history in creation order.
func (r *RedisCheckRepository) List(ctx context.Context) ([]domain.ComplianceCheck, error) {
	data, err := r.cache.Get(ctx, checksKey)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load compliance checks: %w", err)
	}

	var checks []domain.ComplianceCheck
	if err := json.Unmarshal(data, &checks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compliance checks: %w", err)
	}

	return checks, nil
}
