package utils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_NilClientIsNoop(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, nil, "k", map[string]int{"a": 1}, time.Minute))

	var dest map[string]int
	found, err := GetCache(ctx, nil, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dest)

	assert.NoError(t, DeleteCache(ctx, nil, "k"))
	assert.NoError(t, DeleteCacheByPrefix(ctx, nil, "k"))
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

type cachedPage struct {
	Items []string `json:"items"`
	Total int64    `json:"total"`
}

func TestCache_RoundTrip(t *testing.T) {
	rdb, mr := newTestRedis(t)
	ctx := context.Background()

	var miss cachedPage
	found, err := GetCache(ctx, rdb, "wallets:user:1", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	want := cachedPage{Items: []string{"Cash", "Savings"}, Total: 2}
	require.NoError(t, SetCache(ctx, rdb, "wallets:user:1", want, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("wallets:user:1"))

	var got cachedPage
	found, err = GetCache(ctx, rdb, "wallets:user:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	found, err = GetCache(ctx, rdb, "wallets:user:1", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry expires after its TTL")
}

func TestCache_CorruptEntry(t *testing.T) {
	rdb, mr := newTestRedis(t)
	require.NoError(t, mr.Set("broken", "{not json"))

	var dest cachedPage
	_, err := GetCache(context.Background(), rdb, "broken", &dest)
	assert.Error(t, err)
}

func TestCache_DeleteByPrefix(t *testing.T) {
	rdb, mr := newTestRedis(t)
	ctx := context.Background()

	// More keys than one SCAN batch
	for i := 0; i < 2*scanBatch+7; i++ {
		require.NoError(t, SetCache(ctx, rdb, fmt.Sprintf("txhistory:wallet:1:page:%d", i), i, time.Minute))
	}
	require.NoError(t, SetCache(ctx, rdb, "txhistory:wallet:10:page:1", 1, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "wallets:user:1", 1, time.Minute))

	require.NoError(t, DeleteCacheByPrefix(ctx, rdb, "txhistory:wallet:1:"))
	assert.ElementsMatch(t, []string{"txhistory:wallet:10:page:1", "wallets:user:1"}, mr.Keys())

	require.NoError(t, DeleteCache(ctx, rdb, "wallets:user:1", "missing"))
	assert.Equal(t, []string{"txhistory:wallet:10:page:1"}, mr.Keys())
}
