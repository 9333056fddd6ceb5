package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-route-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisSuggestCache holds suggestion lists per query prefix for a short TTL.
// Suggestions are requested on every keystroke; the cache keeps repeated
// prefixes off the geocoding provider.
type RedisSuggestCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSuggestCache(rdb *redis.Client, ttl time.Duration) *RedisSuggestCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisSuggestCache{rdb: rdb, ttl: ttl}
}

func suggestKey(query string) string {
	return "suggest:" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Fetch a cached suggestion list for the query.
func (c *RedisSuggestCache) Get(ctx context.Context, query string) ([]domain.Suggestion, bool, error) {
	if c.rdb == nil {
		return nil, false, errors.New("suggest cache: redis client is nil")
	}

	raw, err := c.rdb.Get(ctx, suggestKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get suggest cache: %w", err)
	}

	var out []domain.Suggestion
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("get suggest cache: decode entry: %w", err)
	}

	return out, true, nil
}

// Store a suggestion list for the query.
func (c *RedisSuggestCache) Put(ctx context.Context, query string, suggestions []domain.Suggestion) error {
	if c.rdb == nil {
		return errors.New("suggest cache: redis client is nil")
	}

	raw, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("insert suggest cache: encode entry: %w", err)
	}

	if err := c.rdb.Set(ctx, suggestKey(query), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert suggest cache: %w", err)
	}

	return nil
}
