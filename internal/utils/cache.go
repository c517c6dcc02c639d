package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Integer to string conversion for cache keys
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// DeleteCacheByPattern deletes every key matching a glob pattern
func DeleteCacheByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	iter := rdb.Scan(ctx, 0, pattern, 0).Iterator() // SCAN to avoid blocking Redis with KEYS
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// WalletCacheKey builds the cache key for a user's wallet balance
func WalletCacheKey(userID uint) string {
	return "wallet:user:" + strconv.Itoa(int(userID))
}

// TxHistoryCacheKey builds the cache key for one page of a user's history
func TxHistoryCacheKey(userID uint, page, pageSize int) string {
	return txHistoryCachePrefix(userID) + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
}

func txHistoryCachePrefix(userID uint) string {
	return "txhistory:user:" + strconv.Itoa(int(userID))
}

// FeedCacheKey builds the cache key for one page of the public video feed
func FeedCacheKey(page, pageSize string) string {
	return feedCachePrefix + "page=" + page + ":size=" + pageSize
}

const feedCachePrefix = "videos:feed:"

// InvalidateWalletCache drops the wallet balance entry and every cached page
// of the user's transaction history after a mutation
func InvalidateWalletCache(ctx context.Context, rdb *redis.Client, userID uint) {
	_ = DeleteCache(ctx, rdb, WalletCacheKey(userID))                          // Invalidate wallet balance cache
	_ = DeleteCacheByPattern(ctx, rdb, txHistoryCachePrefix(userID)+":page:*") // Invalidate all cached history pages
}

// InvalidateFeedCache drops every cached feed page after a video is published
// or its earnings change
func InvalidateFeedCache(ctx context.Context, rdb *redis.Client) {
	_ = DeleteCacheByPattern(ctx, rdb, feedCachePrefix+"*")
}
