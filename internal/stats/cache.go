package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache snapshots category statistics in Redis so a restarted instance can
// serve highlights before its first refresh completes. Purely an
// optimization; the in-memory snapshot is always authoritative.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Cache{rdb: redis.NewClient(opts), ttl: ttl}, nil
}

func snapshotKey(category string) string {
	return "gear:stats:" + category
}

func (c *Cache) StoreSnapshot(ctx context.Context, snap *CategorySnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, snapshotKey(snap.Category), data, c.ttl).Err()
}

func (c *Cache) LoadSnapshot(ctx context.Context, category string) (*CategorySnapshot, error) {
	data, err := c.rdb.Get(ctx, snapshotKey(category)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap CategorySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
