package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type view struct {
	Total int `json:"total"`
}

func setupCacheTest(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(rdb, 5*time.Minute), mr
}

func TestSetGetRoundTrip(t *testing.T) {
	c, _ := setupCacheTest(t)
	ctx := context.Background()

	c.SetJSON(ctx, "dashboard", view{Total: 42}, TagDashboard)

	var got view
	require.True(t, c.GetJSON(ctx, "dashboard", &got))
	assert.Equal(t, 42, got.Total)
}

func TestGetMiss(t *testing.T) {
	c, _ := setupCacheTest(t)
	var got view
	assert.False(t, c.GetJSON(context.Background(), "nope", &got))
}

func TestInvalidateByTag(t *testing.T) {
	c, _ := setupCacheTest(t)
	ctx := context.Background()

	c.SetJSON(ctx, "dashboard", view{Total: 1}, TagDashboard)
	c.SetJSON(ctx, "activity", view{Total: 2}, TagActivity)

	c.Invalidate(ctx, TagDashboard)

	var got view
	assert.False(t, c.GetJSON(ctx, "dashboard", &got), "tagged entry should be dropped")
	assert.True(t, c.GetJSON(ctx, "activity", &got), "other tags untouched")
}

func TestTTLExpiry(t *testing.T) {
	c, mr := setupCacheTest(t)
	ctx := context.Background()

	c.SetJSON(ctx, "dashboard", view{Total: 1}, TagDashboard)
	mr.FastForward(10 * time.Minute)

	var got view
	assert.False(t, c.GetJSON(ctx, "dashboard", &got))
}

func TestNilClientIsNoop(t *testing.T) {
	c := New(nil, time.Minute)
	ctx := context.Background()
	c.SetJSON(ctx, "k", view{Total: 1})
	c.Invalidate(ctx, TagDashboard)
	var got view
	assert.False(t, c.GetJSON(ctx, "k", &got))
}
