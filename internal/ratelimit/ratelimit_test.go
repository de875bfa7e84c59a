package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisLimiterRejectsBadSettings(t *testing.T) {
	_, err := NewRedisLimiter(nil, 0, time.Minute)
	assert.Error(t, err)
	_, err = NewRedisLimiter(nil, 5, 0)
	assert.Error(t, err)
}

func TestOpenBadURL(t *testing.T) {
	_, err := Open(context.Background(), "http://localhost:6379")
	assert.ErrorContains(t, err, "parse redis url")
}

// TestRedisLimiter needs a live server, e.g.
// ORBITREST_TEST_REDIS_URL=redis://localhost:6379/15.
func TestRedisLimiter(t *testing.T) {
	url := os.Getenv("ORBITREST_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ORBITREST_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	l, err := NewRedisLimiter(client, 2, time.Minute)
	require.NoError(t, err)
	key := "test:" + uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, keyPrefix+key) })

	d, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, Decision{Allowed: true, Remaining: 1}, d)

	d, err = l.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Zero(t, d.Remaining)

	d, err = l.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Minute)

	other, err := l.Allow(ctx, key+":other")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
	client.Del(ctx, keyPrefix+key+":other")
}
