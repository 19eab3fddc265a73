package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	entry, err := store.Get(ctx, "GET /:0")
	require.NoError(t, err)
	assert.Nil(t, entry)

	want := &Entry{Status: 200, ContentType: "text/html; charset=utf-8", Body: []byte("<p>hello</p>")}
	require.NoError(t, store.Set(ctx, "GET /:0", want, time.Minute))

	got, err := store.Get(ctx, "GET /:0")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisStoreExpires(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", &Entry{Status: 200, Body: []byte("x")}, 20*time.Second))
	mr.FastForward(21 * time.Second)

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreClear(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", &Entry{Status: 200}, time.Minute))
	require.NoError(t, store.Set(ctx, "b", &Entry{Status: 200}, time.Minute))
	require.NoError(t, mr.Set("auth:blacklist:sig", "1"))

	require.NoError(t, store.Clear(ctx))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, mr.Exists("auth:blacklist:sig"))
}
