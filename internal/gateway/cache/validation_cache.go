package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"identity-platform/internal/gateway/client"
)

// ValidationCache keeps recent positive token verdicts in Redis so hot
// tokens skip the round trip to the identity service. Denies are never
// cached; a rejected token retries the remote on every request.
type ValidationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewValidationCache(addr, password string, ttl time.Duration) *ValidationCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[Redis] ❌ Ping failed: %v (cache degraded, validating remotely)", err)
	} else {
		log.Println("[Redis] ✅ Connected")
	}

	return &ValidationCache{rdb: rdb, ttl: ttl}
}

// key hashes the token so raw credentials never appear in Redis.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "gw:validate:" + hex.EncodeToString(sum[:])
}

func (c *ValidationCache) Get(ctx context.Context, token string) (*client.ValidationResult, bool) {
	data, err := c.rdb.Get(ctx, key(token)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[Redis] Get failed: %v", err)
		}
		return nil, false
	}

	var res client.ValidationResult
	if err := json.Unmarshal(data, &res); err != nil {
		log.Printf("[Redis] Corrupt cache entry dropped: %v", err)
		c.rdb.Del(ctx, key(token))
		return nil, false
	}
	return &res, true
}

func (c *ValidationCache) Put(ctx context.Context, token string, res *client.ValidationResult) {
	if !res.Valid {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(token), data, c.ttl).Err(); err != nil {
		log.Printf("[Redis] Set failed: %v", err)
	}
}

func (c *ValidationCache) Close() error {
	return c.rdb.Close()
}
