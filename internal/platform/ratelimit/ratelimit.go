// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ratelimit provides per-client request budgets for the HTTP layer.

Two engines share the [Limiter] contract:

  - Memory: a token bucket per client (golang.org/x/time/rate). Limits are per process.
  - Redis: a fixed window counter per client. Limits are shared by every replica.

The server picks Redis when REDIS_URL is configured and falls back to memory otherwise.
*/
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/taibuivan/comiking/internal/platform/constants"
)

// Limiter decides whether a client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// # In-Memory Engine

type memoryClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Memory is a token-bucket [Limiter] kept in process memory.
type Memory struct {
	mu      sync.Mutex
	clients map[string]*memoryClient
	rps     rate.Limit
	burst   int
	now     func() time.Time
}

// NewMemory builds a [Memory] limiter. Idle clients are evicted until ctx is done.
func NewMemory(ctx context.Context, rps float64, burst int) *Memory {
	limiter := &Memory{
		clients: make(map[string]*memoryClient),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.evictIdle()
			case <-ctx.Done():
				return
			}
		}
	}()

	return limiter
}

// Allow implements [Limiter].
func (limiter *Memory) Allow(_ context.Context, key string) (bool, error) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, found := limiter.clients[key]
	if !found {
		client = &memoryClient{limiter: rate.NewLimiter(limiter.rps, limiter.burst)}
		limiter.clients[key] = client
	}
	client.lastSeen = limiter.now()

	return client.limiter.AllowN(client.lastSeen, 1), nil
}

func (limiter *Memory) evictIdle() {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	for key, client := range limiter.clients {
		if limiter.now().Sub(client.lastSeen) > constants.RateLimitClientTTL {
			delete(limiter.clients, key)
		}
	}
}

// # Redis Engine

// Redis is a fixed-window [Limiter] backed by a shared Redis instance.
type Redis struct {
	client *goredis.Client
	limit  int64
	window time.Duration
}

// NewRedis builds a [Redis] limiter allowing limit requests per window.
func NewRedis(client *goredis.Client, limit int, window time.Duration) *Redis {
	return &Redis{client: client, limit: int64(limit), window: window}
}

// Allow implements [Limiter].
func (limiter *Redis) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().UnixNano() / int64(limiter.window)
	redisKey := fmt.Sprintf("%s%s:%d", constants.RedisPrefixRateLimit, key, bucket)

	pipe := limiter.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, limiter.window*2)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("ratelimit: redis: %w", err)
	}

	return count.Val() <= limiter.limit, nil
}
