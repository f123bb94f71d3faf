package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"app/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const inventoryStatusKeyPrefix = "inventory_status:"

// RedisInventoryStatusCacheは在庫ステータス照会のTTLキャッシュ。
// 正確性はDB側の条件付きUPDATEが守るので、ここはTTL分の遅れを許容する。
type RedisInventoryStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisInventoryStatusCache(client *redis.Client, ttl time.Duration) *RedisInventoryStatusCache {
	return &RedisInventoryStatusCache{client: client, ttl: ttl}
}

func statusKey(productID int64) string {
	return fmt.Sprintf("%s%d", inventoryStatusKeyPrefix, productID)
}

func (c *RedisInventoryStatusCache) GetStatus(ctx context.Context, productID int64) (model.InventoryStatus, bool, error) {
	raw, err := c.client.Get(ctx, statusKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.InventoryStatus{}, false, nil
	}
	if err != nil {
		return model.InventoryStatus{}, false, err
	}

	var st model.InventoryStatus
	if err := json.Unmarshal(raw, &st); err != nil {
		//壊れたエントリは未ヒット扱い
		return model.InventoryStatus{}, false, nil
	}
	return st, true, nil
}

func (c *RedisInventoryStatusCache) SetStatus(ctx context.Context, st model.InventoryStatus) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statusKey(st.ProductID), raw, c.ttl).Err()
}

func (c *RedisInventoryStatusCache) Invalidate(ctx context.Context, productIDs ...int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, statusKey(id))
	}
	return c.client.Del(ctx, keys...).Err()
}
