package tilepool

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	gferrors "github.com/vnykmshr/gridflow/pkg/common/errors"
	"github.com/vnykmshr/gridflow/pkg/common/validation"
)

// RedisConfig holds configuration for a Redis-backed tile pool.
type RedisConfig struct {
	// Redis client for coordination
	Redis redis.UniversalClient

	// Key is the Redis key prefix. Each pool appends its own run id, so
	// pools created with the same prefix never share a cursor.
	Key string

	// Total is the number of tile ids to dispense
	Total int

	// RedisTimeout is the timeout for Redis operations
	RedisTimeout time.Duration

	// KeyTTL is how long Redis keys should live (defaults to 1 hour)
	KeyTTL time.Duration
}

// DefaultRedisConfig returns a default Redis tile pool configuration.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Key:          "gridflow:tiles",
		RedisTimeout: 500 * time.Millisecond,
		KeyTTL:       time.Hour,
	}
}

// RedisPool is a Dispenser whose cursor lives in Redis under a key unique to
// the pool. It serves the workers of one Counter run; the Counter closes it
// when the run ends.
type RedisPool struct {
	config RedisConfig
	runID  string
	keys   map[string]string

	takeScript *redis.Script
}

// NewRedisPool validates config and creates a pool. It does not touch Redis;
// call Reset before the first run.
func NewRedisPool(config RedisConfig) (*RedisPool, error) {
	if err := validation.ValidateNotNil("tilepool", "redis", config.Redis); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotEmpty("tilepool", "key", config.Key); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("tilepool", "total", config.Total); err != nil {
		return nil, err
	}

	defaults := DefaultRedisConfig()
	if config.RedisTimeout <= 0 {
		config.RedisTimeout = defaults.RedisTimeout
	}
	if config.KeyTTL <= 0 {
		config.KeyTTL = defaults.KeyTTL
	}

	runID, err := newRunID()
	if err != nil {
		return nil, fmt.Errorf("tilepool: generate run id: %w", err)
	}

	return &RedisPool{
		config:     config,
		runID:      runID,
		keys:       redisKeys(config.Key + ":" + runID),
		takeScript: redis.NewScript(luaTake),
	}, nil
}

// TryTake implements Dispenser.
func (rp *RedisPool) TryTake(ctx context.Context) (int, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, rp.config.RedisTimeout)
	defer cancel()

	id, err := rp.takeScript.Run(ctx, rp.config.Redis,
		[]string{rp.keys["cursor"]},
		rp.config.Total, rp.config.KeyTTL.Milliseconds(),
	).Int64()
	if err != nil {
		return 0, false, rp.wrap("TryTake", err)
	}
	if id < 0 {
		return 0, false, nil
	}
	return int(id), true, nil
}

// Reset implements Dispenser.
func (rp *RedisPool) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, rp.config.RedisTimeout)
	defer cancel()

	pipe := rp.config.Redis.TxPipeline()
	pipe.Set(ctx, rp.keys["cursor"], 0, rp.config.KeyTTL)
	pipe.Set(ctx, rp.keys["total"], rp.config.Total, rp.config.KeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return rp.wrap("Reset", err)
	}
	return nil
}

// Total implements Dispenser.
func (rp *RedisPool) Total() int {
	return rp.config.Total
}

// RunID returns the suffix that makes this pool's keys unique.
func (rp *RedisPool) RunID() string {
	return rp.runID
}

// CursorKey returns the Redis key holding the cursor.
func (rp *RedisPool) CursorKey() string {
	return rp.keys["cursor"]
}

// Dispensed returns how many ids have been handed out since the last Reset.
func (rp *RedisPool) Dispensed(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, rp.config.RedisTimeout)
	defer cancel()

	val, err := rp.config.Redis.Get(ctx, rp.keys["cursor"]).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, rp.wrap("Dispensed", err)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, rp.wrap("Dispensed", err)
	}
	return n, nil
}

// Close removes the pool's keys from Redis.
func (rp *RedisPool) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, rp.config.RedisTimeout)
	defer cancel()

	if err := rp.config.Redis.Del(ctx, rp.keys["cursor"], rp.keys["total"]).Err(); err != nil {
		return rp.wrap("Close", err)
	}
	return nil
}

func (rp *RedisPool) wrap(op string, err error) error {
	return gferrors.NewOperationError("tilepool", op, fmt.Errorf("%w: %w", gferrors.ErrPoolUnavailable, err)).
		WithContext("key " + rp.keys["cursor"])
}

func newRunID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// redisKeys generates Redis keys for the pool state.
func redisKeys(prefix string) map[string]string {
	return map[string]string{
		"cursor": prefix + ":cursor",
		"total":  prefix + ":total",
	}
}

// luaTake returns the cursor and advances it, or -1 once it reaches ARGV[1].
const luaTake = `
local cursor_key = KEYS[1]
local total = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

local cursor = tonumber(redis.call('GET', cursor_key) or '0')
if cursor >= total then
    return -1
end

redis.call('SET', cursor_key, tostring(cursor + 1), 'PX', ttl)
return cursor
`
