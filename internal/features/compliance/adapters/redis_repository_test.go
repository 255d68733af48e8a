package adapters

import (
	"context"
	"testing"

	"freight-engine/internal/core/cache"
	"freight-engine/internal/features/compliance/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) *RedisCheckRepository {
	mr := miniredis.RunT(t)

	c, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return NewRedisCheckRepository(c)
}

func TestRedisCheckRepository_AppendPreservesOrder(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	checks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, checks)

	require.NoError(t, repo.Append(ctx, domain.ComplianceCheck{ID: "cc-1", Status: domain.StatusPass}))
	require.NoError(t, repo.Append(ctx, domain.ComplianceCheck{ID: "cc-2", Status: domain.StatusFail}))

	checks, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, "cc-1", checks[0].ID)
	assert.Equal(t, domain.StatusFail, checks[1].Status)
}
