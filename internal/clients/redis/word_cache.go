package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/learneloquent/vocab-backend/internal/logger"
	"github.com/learneloquent/vocab-backend/internal/types"
)

// WordCache fronts the immutable word catalog. Entries never change once
// written, so a plain TTL cache is safe; misses simply fall through to the
// store.
type WordCache interface {
	GetMany(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]*types.Word
	SetMany(ctx context.Context, words []*types.Word)
	Close() error
}

type wordCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewWordCache(log *logger.Logger) (WordCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("WORD_CACHE_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid WORD_CACHE_TTL: %w", err)
		}
		ttl = parsed
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &wordCache{
		log: log.With("service", "RedisWordCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(id uuid.UUID) string {
	return "word:" + id.String()
}

func (c *wordCache) GetMany(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]*types.Word {
	found := make(map[uuid.UUID]*types.Word, len(ids))
	if len(ids) == 0 {
		return found
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cacheKey(id))
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.log.Warn("Word cache read failed, falling through to store", "error", err)
		return found
	}
	for i, val := range vals {
		raw, ok := val.(string)
		if !ok {
			continue
		}
		var word types.Word
		if err := json.Unmarshal([]byte(raw), &word); err != nil {
			c.log.Warn("Dropping undecodable word cache entry", "key", keys[i], "error", err)
			continue
		}
		found[ids[i]] = &word
	}
	return found
}

func (c *wordCache) SetMany(ctx context.Context, words []*types.Word) {
	if len(words) == 0 {
		return
	}

	pipe := c.rdb.Pipeline()
	for _, word := range words {
		if word == nil {
			continue
		}
		raw, err := json.Marshal(word)
		if err != nil {
			continue
		}
		pipe.Set(ctx, cacheKey(word.ID), raw, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("Word cache write failed", "error", err)
	}
}

func (c *wordCache) Close() error {
	return c.rdb.Close()
}
