package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Connect dials Redis with exponential backoff between ping attempts. Used by
// both the session store and the stream consumer.
func Connect(ctx context.Context, addr string, password string, maxAttempts int, logger *zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		DB:              0,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	})

	var err error
	for attempt := range maxAttempts {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			logger.Info().Dur("backoff", backoff).Msg("waiting before Redis retry")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		err = client.Ping(ctx).Err()
		if err == nil {
			logger.Info().Str("addr", addr).Int("attempts", attempt+1).Msg("Redis connected")
			return client, nil
		}

		logger.Warn().Err(err).Int("attempt", attempt+1).Int("max_attempts", maxAttempts).Msg("Redis ping failed")
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", maxAttempts, err)
}
