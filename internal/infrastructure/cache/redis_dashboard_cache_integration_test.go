//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/agro/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Options {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return &redis.Options{Addr: endpoint}
}

func TestRedisDashboardCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisDashboardCache(ctx, startRedis(t))
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	summary := report.NewDashboardSummary()
	summary.TotalFarms = 2
	summary.TotalArea = decimal.RequireFromString("150.25")
	summary.CropCount["Soja"] = 2
	summary.HarvestsByYear[2024] = map[string]int{"Soja": 2}
	require.NoError(t, c.Set(ctx, summary, time.Minute))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.TotalFarms)
	assert.True(t, got.TotalArea.Equal(summary.TotalArea))
	assert.Equal(t, 2, got.HarvestsByYear[2024]["Soja"])

	require.NoError(t, c.Delete(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisDashboardCache_SetIfVersion(t *testing.T) {
	ctx := context.Background()
	opts := startRedis(t)
	c, err := NewRedisDashboardCache(ctx, opts)
	require.NoError(t, err)
	defer c.Close()
	// a second instance sharing the same Redis
	other, err := NewRedisDashboardCache(ctx, opts)
	require.NoError(t, err)
	defer other.Close()

	version, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	summary := report.NewDashboardSummary()
	summary.TotalFarms = 1

	t.Run("stores while the version is unchanged", func(t *testing.T) {
		stored, err := c.SetIfVersion(ctx, summary, time.Minute, version)
		require.NoError(t, err)
		assert.True(t, stored)

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("a delete elsewhere rejects a load that started before it", func(t *testing.T) {
		before, err := c.Version(ctx)
		require.NoError(t, err)

		require.NoError(t, other.Delete(ctx))

		stored, err := c.SetIfVersion(ctx, summary, time.Minute, before)
		require.NoError(t, err)
		assert.False(t, stored)

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		after, err := c.Version(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)
	})
}
