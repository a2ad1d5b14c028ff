package ratelimiter

import (
	"context"
	"os"
	"proposalai/internal/core/domain/logging"
	ratelimiter "proposalai/internal/core/domain/rate_limiter"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestWindowKey(t *testing.T) {
	at := time.Date(2024, 3, 10, 12, 34, 56, 0, time.UTC)

	require.Equal(
		t,
		windowKey("k", at, time.Hour),
		windowKey("k", at.Add(25*time.Minute), time.Hour),
	)
	require.NotEqual(
		t,
		windowKey("k", at, time.Hour),
		windowKey("k", at.Add(26*time.Minute), time.Hour),
	)
	require.NotEqual(t, windowKey("a", at, time.Minute), windowKey("b", at, time.Minute))
}

func TestRedisLimit(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}
	opt, err := redis.ParseURL(redisURL)
	require.Nil(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewRedis(client, logging.NewFakeLogger(), func() time.Time { return now })
	key := "test::" + uuid.NewString()
	limit := ratelimiter.Limit{Value: 3, Interval: ratelimiter.Hour}

	for i := 0; i < 3; i++ {
		require.True(t, limiter.CheckLimit(context.Background(), key, limit).IsAllowed)
	}
	require.False(t, limiter.CheckLimit(context.Background(), key, limit).IsAllowed)

	now = now.Add(time.Hour)
	require.True(t, limiter.CheckLimit(context.Background(), key, limit).IsAllowed)
}

func TestRedisUnavailableFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()
	log := logging.NewFakeLogger()
	limiter := NewRedis(client, log, time.Now)

	result := limiter.CheckLimit(
		context.Background(),
		"key",
		ratelimiter.Limit{Value: 1, Interval: ratelimiter.Minute},
	)

	require.True(t, result.IsAllowed)
	require.Equal(t, 1, log.CountByLevel(logging.ERROR))
}
