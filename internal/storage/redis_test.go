package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStoreWithClient(client, "backoffice-test")
}

func TestRedisStoreRoundtrip(t *testing.T) {
	rs := newMiniRedisStore(t)

	want := sampleRecord()
	require.NoError(t, rs.Save(context.Background(), want))

	got, err := rs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestRedisStoreLoadEmpty(t *testing.T) {
	rs := newMiniRedisStore(t)

	_, err := rs.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreClear(t *testing.T) {
	rs := newMiniRedisStore(t)

	require.NoError(t, rs.Save(context.Background(), sampleRecord()))
	require.NoError(t, rs.Clear(context.Background()))

	_, err := rs.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	// clearing twice stays a no-op
	require.NoError(t, rs.Clear(context.Background()))
}

func TestRedisStoreOverwrite(t *testing.T) {
	rs := newMiniRedisStore(t)

	first := sampleRecord()
	require.NoError(t, rs.Save(context.Background(), first))

	second := first
	second.Token = "tok-456"
	second.Profile.Permissions = []string{"orders:read"}
	require.NoError(t, rs.Save(context.Background(), second))

	got, err := rs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second, *got)
}

func TestRedisStorePartialHashIsCorrupt(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rs := NewRedisStoreWithClient(client, "backoffice-test")
	require.NoError(t, client.HSet(context.Background(), "backoffice-test:session", "token", "t").Err())

	_, err := rs.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStorePing(t *testing.T) {
	rs := newMiniRedisStore(t)
	assert.NoError(t, rs.Ping(context.Background()))
}
