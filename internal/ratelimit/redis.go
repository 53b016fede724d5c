package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore shares fixed windows across server instances. Each key is an
// INCR counter that expires at the end of its window.
type RedisStore struct {
	rdb    goredis.Cmdable
	limit  int
	period time.Duration
	prefix string
}

// NewRedisStore uses rdb for counters. prefix namespaces the keys.
func NewRedisStore(rdb goredis.Cmdable, limit int, period time.Duration, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "promptcritic:ratelimit:"
	}
	return &RedisStore{rdb: rdb, limit: limit, period: period, prefix: prefix}
}

// DialRedis connects to addr and checks it with PING.
func DialRedis(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ratelimit.DialRedis: ping: %w", err)
	}
	return rdb, nil
}

func (r *RedisStore) Allow(ctx context.Context, key string) (Decision, error) {
	k := r.prefix + key

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, r.period)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("ratelimit.RedisStore.Allow: %w", err)
	}

	reset := ttl.Val()
	if reset < 0 {
		reset = r.period
	}
	return decide(incr.Val(), r.limit, reset), nil
}
