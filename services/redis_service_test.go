package services

import (
	"context"
	"testing"

	"resortbook/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCacheVersioning(t *testing.T) {
	cache := newMemoryCache()
	ac := NewAvailabilityCache(cache)
	ctx := context.Background()

	var out []string
	key, hit, err := ac.Load(ctx, "persons=2", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, constants.CacheKeyAvailablePrefix+":v0:persons=2", key)

	require.NoError(t, ac.Store(ctx, key, []string{"Room"}))
	_, hit, err = ac.Load(ctx, "persons=2", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"Room"}, out)

	require.NoError(t, ac.Invalidate(ctx))
	key, hit, err = ac.Load(ctx, "persons=2", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Contains(t, key, ":v1:")
}

func TestNilAvailabilityCacheIsDisabled(t *testing.T) {
	var ac *AvailabilityCache
	ctx := context.Background()

	key, hit, err := ac.Load(ctx, "x", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, key)
	assert.NoError(t, ac.Store(ctx, key, 1))
	assert.NoError(t, ac.Invalidate(ctx))
}
