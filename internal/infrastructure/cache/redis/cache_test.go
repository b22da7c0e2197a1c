package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"crypto-market-reporter/internal/infrastructure/config"
	"crypto-market-reporter/internal/types/market"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failSet error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.failSet != nil {
		return redis.NewStatusResult("", f.failSet)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func TestSnapshotRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store := NewSnapshotStore(kv, "cryptoreport:", 10*time.Minute)
	ctx := context.Background()

	snapshot := market.Snapshot{
		CycleID: "c0ffee",
		TakenAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		Rows: market.Table{{
			Name:           "Bitcoin",
			Symbol:         "btc",
			CurrentPrice:   decimal.RequireFromString("64000.5"),
			MarketCap:      decimal.RequireFromString("1260000000000"),
			Volume24h:      decimal.RequireFromString("31000000000"),
			PriceChange24h: decimal.NewNullDecimal(decimal.RequireFromString("-1.25")),
		}},
	}

	require.NoError(t, store.SaveSnapshot(ctx, snapshot))
	assert.Equal(t, "cryptoreport:snapshot:latest", store.Key())
	assert.Equal(t, 10*time.Minute, kv.ttls[store.Key()])

	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c0ffee", loaded.CycleID)
	assert.True(t, snapshot.TakenAt.Equal(loaded.TakenAt))
	require.Len(t, loaded.Rows, 1)
	assert.True(t, loaded.Rows[0].CurrentPrice.Equal(snapshot.Rows[0].CurrentPrice))
	assert.True(t, loaded.Rows[0].PriceChange24h.Valid)
}

func TestSnapshotOverwritesPrevious(t *testing.T) {
	kv := newFakeKV()
	store := NewSnapshotStore(kv, "p:", 0)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, market.Snapshot{CycleID: "first", Rows: market.Table{{Name: "a"}, {Name: "b"}}}))
	require.NoError(t, store.SaveSnapshot(ctx, market.Snapshot{CycleID: "second", Rows: market.Table{{Name: "c"}}}))

	assert.Len(t, kv.data, 1)
	loaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.CycleID)
	assert.Len(t, loaded.Rows, 1)
}

func TestLoadSnapshotMissing(t *testing.T) {
	store := NewSnapshotStore(newFakeKV(), "p:", 0)

	_, err := store.LoadSnapshot(context.Background())
	assert.True(t, errors.Is(err, redis.Nil))
}

func TestSaveSnapshotError(t *testing.T) {
	kv := newFakeKV()
	kv.failSet = errors.New("connection refused")
	store := NewSnapshotStore(kv, "p:", 0)

	err := store.SaveSnapshot(context.Background(), market.Snapshot{CycleID: "x"})
	assert.EqualError(t, err, "connection refused")
}

func TestRedisServiceNotStarted(t *testing.T) {
	rs := NewRedisService(testRedisConfig())

	assert.Equal(t, StateStopped, rs.State())
	assert.False(t, rs.IsRunning())
	assert.Nil(t, rs.SnapshotStore())
	assert.Error(t, rs.Stop())
}

func testRedisConfig() config.RedisConfig {
	return config.RedisConfig{Host: "127.0.0.1", Port: 6379, KeyPrefix: "p:"}
}
