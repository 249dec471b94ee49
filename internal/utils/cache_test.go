package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newCacheFixture(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mockRedis
}

func TestCache_SetThenGet(t *testing.T) {
	client, _ := newCacheFixture(t)
	ctx := context.Background()

	in := &cachedThing{Name: "web-dev", Count: 42}
	require.NoError(t, SetCacheData(ctx, client, "thing:1", in, time.Minute))

	out, appErr := GetCacheData[cachedThing](ctx, client, "thing:1")
	require.Nil(t, appErr)
	require.NotNil(t, out)
	assert.Equal(t, *in, *out)
}

func TestCache_MissReturnsNilNil(t *testing.T) {
	client, _ := newCacheFixture(t)

	out, appErr := GetCacheData[cachedThing](context.Background(), client, "missing")
	assert.Nil(t, appErr, "a miss is not an error")
	assert.Nil(t, out)
}

func TestCache_Delete(t *testing.T) {
	client, _ := newCacheFixture(t)
	ctx := context.Background()

	in := &cachedThing{Name: "web-dev"}
	require.NoError(t, SetCacheData(ctx, client, "thing:1", in, time.Minute))
	require.NoError(t, DeleteCacheData(ctx, client, "thing:1"))

	out, appErr := GetCacheData[cachedThing](ctx, client, "thing:1")
	assert.Nil(t, appErr)
	assert.Nil(t, out)
}

func TestCache_Expiry(t *testing.T) {
	client, mockRedis := newCacheFixture(t)
	ctx := context.Background()

	in := &cachedThing{Name: "web-dev"}
	require.NoError(t, SetCacheData(ctx, client, "thing:1", in, time.Second))

	mockRedis.FastForward(2 * time.Second)

	out, appErr := GetCacheData[cachedThing](ctx, client, "thing:1")
	assert.Nil(t, appErr)
	assert.Nil(t, out, "expired entries read as a miss")
}
