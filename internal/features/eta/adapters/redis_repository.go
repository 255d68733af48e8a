package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/features/eta/domain"
)

const etaKeyPrefix = "eta:"

// RedisEtaRepository implements ports.EtaRepository using the cache adapter.
// One record per tracking number; Upsert replaces it wholesale.
type RedisEtaRepository struct {
	cache cache.Cache
}

// NewRedisEtaRepository creates a new RedisEtaRepository.
func NewRedisEtaRepository(c cache.Cache) *RedisEtaRepository {
	return &RedisEtaRepository{cache: c}
}

// Upsert stores the prediction keyed by tracking number.
func (r *RedisEtaRepository) Upsert(ctx context.Context, eta domain.PredictiveEta) error {
	data, err := json.Marshal(eta)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	if err := r.cache.Set(ctx, etaKeyPrefix+eta.TrackingNumber, data, 0); err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}

	return nil
}

// Get returns the live prediction for a tracking number, or (nil, nil).
func (r *RedisEtaRepository) Get(ctx context.Context, trackingNumber string) (*domain.PredictiveEta, error) {
	data, err := r.cache.Get(ctx, etaKeyPrefix+trackingNumber)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load prediction: %w", err)
	}

	var eta domain.PredictiveEta
	if err := json.Unmarshal(data, &eta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prediction: %w", err)
	}

	return &eta, nil
}
