package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/features/telemetry/domain"
)

const (
	readingsKeyPrefix = "telemetry:readings:"
	geofenceKeyPrefix = "telemetry:geofence:"
)

// RedisReadingRepository implements ports.ReadingRepository using the cache
// adapter. Readings are stored per tracking number in arrival order.
type RedisReadingRepository struct {
	cache cache.Cache
}

// NewRedisReadingRepository creates a new RedisReadingRepository.
func NewRedisReadingRepository(c cache.Cache) *RedisReadingRepository {
	return &RedisReadingRepository{cache: c}
}

// Append adds a reading to the tracking number's log.
func (r *RedisReadingRepository) Append(ctx context.Context, reading domain.IoTReading) error {
	readings, err := r.List(ctx, reading.TrackingNumber)
	if err != nil {
		return err
	}

	readings = append(readings, reading)
	data, err := json.Marshal(readings)
	if err != nil {
		return fmt.Errorf("failed to marshal readings: %w", err)
	}

	if err := r.cache.Set(ctx, readingsKeyPrefix+reading.TrackingNumber, data, 0); err != nil {
		return fmt.Errorf("failed to save readings: %w", err)
	}

	return nil
}

// Latest returns the most recent reading for a tracking number, or (nil, nil).
func (r *RedisReadingRepository) Latest(ctx context.Context, trackingNumber string) (*domain.IoTReading, error) {
	readings, err := r.List(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}
	return &readings[len(readings)-1], nil
}

// List returns the reading log in arrival order.
func (r *RedisReadingRepository) List(ctx context.Context, trackingNumber string) ([]domain.IoTReading, error) {
	data, err := r.cache.Get(ctx, readingsKeyPrefix+trackingNumber)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}

	var readings []domain.IoTReading
	if err := json.Unmarshal(data, &readings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal readings: %w", err)
	}

	return readings, nil
}

// RedisGeofenceAlertRepository implements ports.GeofenceAlertRepository using
// the cache adapter.
type RedisGeofenceAlertRepository struct {
	cache cache.Cache
}

// NewRedisGeofenceAlertRepository creates a new RedisGeofenceAlertRepository.
func NewRedisGeofenceAlertRepository(c cache.Cache) *RedisGeofenceAlertRepository {
	return &RedisGeofenceAlertRepository{cache: c}
}

// Append adds a geofence alert to the tracking number's history.
func (r *RedisGeofenceAlertRepository) Append(ctx context.Context, alert domain.GeofenceAlert) error {
	alerts, err := r.List(ctx, alert.TrackingNumber)
	if err != nil {
		return err
	}

	alerts = append(alerts, alert)
	data, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal geofence alerts: %w", err)
	}

	if err := r.cache.Set(ctx, geofenceKeyPrefix+alert.TrackingNumber, data, 0); err != nil {
		return fmt.Errorf("failed to save geofence alerts: %w", err)
	}

	return nil
}

// List returns the geofence alerts for a tracking number in creation order.
func (r *RedisGeofenceAlertRepository) List(ctx context.Context, trackingNumber string) ([]domain.GeofenceAlert, error) {
	data, err := r.cache.Get(ctx, geofenceKeyPrefix+trackingNumber)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load geofence alerts: %w", err)
	}

	var alerts []domain.GeofenceAlert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geofence alerts: %w", err)
	}

	return alerts, nil
}
