package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/appnity/roommate-finder/internal/config"
	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Redis stays nil when REDIS_ADDR is empty or unreachable. Every helper
// below degrades to a no-op (or cache miss) in that case.
var Redis *redis.Client

// ErrCacheMiss is returned by CacheGet for absent keys and when Redis is off.
var ErrCacheMiss = errors.New("cache miss")

const blacklistPrefix = "blacklist:jwt:"

func InitRedis() {
	if config.AppConfig.RedisAddr == "" {
		logger.Warn().Msg("REDIS_ADDR not set: lookup cache and logout blacklist disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("Failed to connect to Redis: lookup cache and logout blacklist disabled")
		_ = client.Close()
		return
	}

	Redis = client
	logger.Info().Str("addr", config.AppConfig.RedisAddr).Msg("Connected to Redis")
}

func CacheSet(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(ctx, key, payload, expiration).Err()
}

func CacheGet(ctx context.Context, key string, dest interface{}) error {
	if Redis == nil {
		return ErrCacheMiss
	}
	val, err := Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

// CacheInvalidate deletes every key matching pattern. SCAN is used instead of
// KEYS so a large keyspace does not block the server.
func CacheInvalidate(ctx context.Context, pattern string) error {
	if Redis == nil {
		return nil
	}
	iter := Redis.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(ctx, keys...).Err()
	}
	return nil
}

// BlacklistToken revokes a JWT id until its natural expiry.
func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	return Redis.Set(context.Background(), blacklistPrefix+jti, "1", ttl).Err()
}

// IsTokenBlacklisted fails open: without Redis, or on a Redis error, tokens are
// treated as valid.
func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	n, err := Redis.Exists(context.Background(), blacklistPrefix+jti).Result()
	if err != nil {
		logger.Warn().Err(err).Msg("Token blacklist check failed")
		return false
	}
	return n > 0
}
