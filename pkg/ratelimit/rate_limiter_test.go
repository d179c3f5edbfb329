package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(t *testing.T, limit int) *RateLimiter {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(client, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: limit,
	})
}

func TestIsAllowedDeniesOverLimit(t *testing.T) {
	limiter := testLimiter(t, 3)
	ctx := context.Background()

	denied := 0
	for i := 0; i < 20; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeDefault)
		require.NoError(t, err)
		if !result.Allowed {
			denied++
		}
	}

	assert.Equal(t, 17, denied)
}

// A burst inside a single clock instant must count every request, not
// collapse into one window entry.
func TestIsAllowedCountsSameInstantBurst(t *testing.T) {
	limiter := testLimiter(t, 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeDefault)
		require.NoError(t, err)
		assert.True(t, result.Allowed, fmt.Sprintf("request %d should be allowed", i+1))
		assert.Equal(t, 5-i-1, result.Remaining)
	}

	result, err := limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestIsAllowedSkipsWhitelistedIP(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiter(client, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 1,
		WhitelistedIPs:  []string{"10.0.0.3"},
	})

	for i := 0; i < 10; i++ {
		result, err := limiter.IsAllowed(context.Background(), "10.0.0.3", RateLimitTypeDefault)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}
}

func TestIsAllowedKeysPerClientAndType(t *testing.T) {
	limiter := testLimiter(t, 1)
	ctx := context.Background()

	first, err := limiter.IsAllowed(ctx, "10.0.0.4", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	blocked, err := limiter.IsAllowed(ctx, "10.0.0.4", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	other, err := limiter.IsAllowed(ctx, "10.0.0.5", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}
