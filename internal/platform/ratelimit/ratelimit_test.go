// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_AllowBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewMemory(ctx, 1, 2)
	limiter.now = func() time.Time { return frozen }

	for range 2 {
		allowed, err := limiter.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Other clients keep their own bucket.
	allowed, err = limiter.Allow(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemory_EvictIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewMemory(ctx, 10, 10)
	limiter.now = func() time.Time { return current }

	_, _ = limiter.Allow(ctx, "203.0.113.7")
	current = current.Add(10 * time.Minute)
	limiter.evictIdle()

	assert.Empty(t, limiter.clients)
}
