package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

const (
	stockKeyPrefix = "stock:"
	removedSuffix  = ":removed"

	// removedTTL bounds how long a removal keeps blocking stale levels.
	removedTTL = 24 * time.Hour
)

// setStockScript writes a level only when its version is newer than both the
// stored level and any removal marker for the key. Equal versions lose.
var setStockScript = redis.NewScript(`
local version = tonumber(ARGV[3])

local current = redis.call('HGET', KEYS[1], 'updated_at')
if current and tonumber(current) >= version then
	return 0
end
local removed = redis.call('GET', KEYS[2])
if removed and tonumber(removed) >= version then
	return 0
end

redis.call('HSET', KEYS[1], 'name', ARGV[1], 'quantity', ARGV[2], 'updated_at', ARGV[3])
return 1
`)

// deleteStockScript drops the level and leaves a removal marker carrying the
// removal version, unless the stored level is already newer.
var deleteStockScript = redis.NewScript(`
local version = tonumber(ARGV[1])

local current = redis.call('HGET', KEYS[1], 'updated_at')
if current and tonumber(current) >= version then
	return 0
end
local removed = redis.call('GET', KEYS[2])
if removed and tonumber(removed) >= version then
	return 0
end

redis.call('DEL', KEYS[1])
redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[2])
return 1
`)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func stockKey(category domain.Category, itemID int) string {
	return fmt.Sprintf("%s%s:%d", stockKeyPrefix, category, itemID)
}

// SetStock stores the level under updated_at = version (clock microseconds).
func (r *RedisAdapter) SetStock(ctx context.Context, level domain.StockLevel) error {
	key := stockKey(level.Category, level.ItemID)
	return setStockScript.Run(ctx, r.client, []string{key, key + removedSuffix},
		level.Name, level.Quantity, level.Version).Err()
}

func (r *RedisAdapter) DeleteStock(ctx context.Context, category domain.Category, itemID int, version int64) error {
	key := stockKey(category, itemID)
	return deleteStockScript.Run(ctx, r.client, []string{key, key + removedSuffix},
		version, removedTTL.Milliseconds()).Err()
}

// Stock reads a mirrored level back. The bool is false when the key is absent.
func (r *RedisAdapter) Stock(ctx context.Context, category domain.Category, itemID int) (domain.StockLevel, bool, error) {
	fields, err := r.client.HGetAll(ctx, stockKey(category, itemID)).Result()
	if err != nil {
		return domain.StockLevel{}, false, err
	}
	if len(fields) == 0 {
		return domain.StockLevel{}, false, nil
	}

	quantity, err := strconv.Atoi(fields["quantity"])
	if err != nil {
		return domain.StockLevel{}, false, fmt.Errorf("parse quantity: %w", err)
	}
	updated, err := strconv.ParseInt(fields["updated_at"], 10, 64)
	if err != nil {
		return domain.StockLevel{}, false, fmt.Errorf("parse updated_at: %w", err)
	}

	return domain.StockLevel{
		Category:  category,
		ItemID:    itemID,
		Name:      fields["name"],
		Quantity:  quantity,
		Version:   updated,
		UpdatedAt: time.UnixMicro(updated),
	}, true, nil
}
