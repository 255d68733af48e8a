package adapters

import (
	"context"
	"testing"
	"time"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/features/alerts/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) *RedisAlertRepository {
	mr := miniredis.RunT(t)

	c, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return NewRedisAlertRepository(c)
}

func TestRedisAlertRepository_RoundTrip(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	alerts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	stored := []domain.ExceptionAlert{
		{
			ID:             "al-1",
			TrackingNumber: "FRX-1001",
			Type:           domain.ExceptionTypeDelay,
			Severity:       domain.SeverityMedium,
			Status:         domain.AlertStatusOpen,
			CreatedAt:      time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:       "al-2",
			Type:     domain.ExceptionTypeGeofenceExit,
			Severity: domain.SeverityHigh,
			Status:   domain.AlertStatusOpen,
		},
	}
	require.NoError(t, repo.ReplaceAll(ctx, stored))

	alerts, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, alerts)

	stored[1].Status = domain.AlertStatusResolved
	require.NoError(t, repo.ReplaceAll(ctx, stored))

	alerts, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertStatusResolved, alerts[1].Status)
}
