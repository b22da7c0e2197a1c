// internal/infrastructure/cache/redis/cache.go
package redis

import (
	"context"
	"encoding/json"
	"time"

	"crypto-market-reporter/internal/types/market"

	"github.com/go-redis/redis/v8"
)

const latestSnapshotKey = "snapshot:latest"

// kvClient — подмножество redis.Cmdable, которое нужно хранилищу
type kvClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// SnapshotStore хранит только последний выгруженный снимок
type SnapshotStore struct {
	client kvClient
	prefix string
	ttl    time.Duration
}

// NewSnapshotStore создает хранилище с префиксом ключей и TTL (0 - без срока)
func NewSnapshotStore(client kvClient, prefix string, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Key возвращает полный ключ последнего снимка
func (s *SnapshotStore) Key() string {
	return s.prefix + latestSnapshotKey
}

// SaveSnapshot перезаписывает последний снимок
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot market.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.Key(), data, s.ttl).Err()
}

// LoadSnapshot читает последний снимок; redis.Nil если его нет
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*market.Snapshot, error) {
	data, err := s.client.Get(ctx, s.Key()).Result()
	if err != nil {
		return nil, err
	}

	var snapshot market.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
