package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/features/facts/domain"
)

const (
	shipmentKeyPrefix = "facts:shipment:"
	jobKeyPrefix      = "facts:job:"
	customsKeyPrefix  = "facts:customs:"
)

// RedisFactStore implements ports.FactStore over the cache adapter.
// The record store (owned by the dashboard, not the engine) writes shipment,
// job and customs facts under well-known keys; the engine only reads them.
type RedisFactStore struct {
	cache cache.Cache
}

// NewRedisFactStore creates a new RedisFactStore.
func NewRedisFactStore(c cache.Cache) *RedisFactStore {
	return &RedisFactStore{cache: c}
}

// ShipmentByTracking returns the shipment fact for a tracking number.
func (s *RedisFactStore) ShipmentByTracking(ctx context.Context, trackingNumber string) (*domain.ShipmentFact, error) {
	data, err := s.cache.Get(ctx, shipmentKeyPrefix+trackingNumber)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("failed to read shipment fact: %w", err)
	}

	var fact domain.ShipmentFact
	if err := json.Unmarshal(data, &fact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment fact: %w", err)
	}

	return &fact, nil
}

// JobByTracking returns the linked cargo job, or (nil, nil) when absent.
func (s *RedisFactStore) JobByTracking(ctx context.Context, trackingNumber string) (*domain.CargoJob, error) {
	data, err := s.cache.Get(ctx, jobKeyPrefix+trackingNumber)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cargo job: %w", err)
	}

	var job domain.CargoJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cargo job: %w", err)
	}

	return &job, nil
}

// CustomsDutyByTracking returns the recorded customs duty in USD, or 0.
func (s *RedisFactStore) CustomsDutyByTracking(ctx context.Context, trackingNumber string) (float64, error) {
	data, err := s.cache.Get(ctx, customsKeyPrefix+trackingNumber)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read customs entry: %w", err)
	}

	var entry domain.CustomsEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return 0, fmt.Errorf("failed to unmarshal customs entry: %w", err)
	}

	return entry.DutyUsd, nil
}
