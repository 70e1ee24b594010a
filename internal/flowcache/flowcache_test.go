package flowcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*FlowCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, ttl), mr
}

func TestSaveAndTake(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	saved := &Flow{
		State:        "abc-123",
		FrontendHost: "https://portal.example.com",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, cache.Save(ctx, saved))

	got, err := cache.Take(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, saved.State, got.State)
	assert.Equal(t, saved.FrontendHost, got.FrontendHost)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
}

func TestTakeIsSingleUse(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, &Flow{State: "once"}))

	_, err := cache.Take(ctx, "once")
	require.NoError(t, err)

	_, err = cache.Take(ctx, "once")
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestTakeUnknownState(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	_, err := cache.Take(context.Background(), "never-saved")
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestNilClientFailsCleanly(t *testing.T) {
	cache := New(nil, time.Minute)
	ctx := context.Background()

	err := cache.Save(ctx, &Flow{State: "s"})
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	_, err = cache.Take(ctx, "s")
	assert.ErrorIs(t, err, ErrCacheUnavailable)
}

func TestFlowExpires(t *testing.T) {
	cache, mr := newTestCache(t, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, &Flow{State: "stale"}))
	mr.FastForward(11 * time.Minute)

	_, err := cache.Take(ctx, "stale")
	assert.ErrorIs(t, err, ErrFlowNotFound)
}
