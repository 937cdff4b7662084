package stream

import (
	"context"
	"fmt"

	"github.com/medsimlab/woundcare-agent/internal/executor"
	redisconn "github.com/medsimlab/woundcare-agent/internal/redis"
	streamredis "github.com/medsimlab/woundcare-agent/internal/stream/redis"
	"github.com/rs/zerolog"
)

type Config struct {
	Provider    string // redis for now; kafka, sqs later
	RedisConfig *streamredis.StreamConfig
}

func NewConsumer(
	ctx context.Context,
	cfg *Config,
	exec *executor.StepExecutor,
	logger *zerolog.Logger,
) (Consumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := redisconn.Connect(ctx, cfg.RedisConfig.RedisAddr, cfg.RedisConfig.RedisPassword, 5, logger)
		if err != nil {
			return nil, err
		}

		return streamredis.NewConsumer(
			client,
			cfg.RedisConfig.Stream,
			cfg.RedisConfig.Group,
			cfg.RedisConfig.ConsumerName,
			exec,
			logger,
		), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
