package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/medsimlab/woundcare-agent/internal/setup"
	setuplogger "github.com/medsimlab/woundcare-agent/internal/setup/logger"
	"github.com/medsimlab/woundcare-agent/internal/stream"
	streamredis "github.com/medsimlab/woundcare-agent/internal/stream/redis"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := setup.LoadConfig()

	// Workers log structured JSON
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := setuplogger.New(cfg.LogLevel)
	log.Logger = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.DB.Close()

	streamCfg := &stream.Config{
		Provider: "redis",
		RedisConfig: streamredis.NewStreamConfig(
			cfg.RedisAddr,
			cfg.RedisPassword,
			cfg.StreamName,
			cfg.StreamGroup,
			cfg.ConsumerName,
		),
	}

	consumer, err := stream.NewConsumer(ctx, streamCfg, deps.Executor, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	if err := consumer.Stop(); err != nil {
		logger.Error().Err(err).Msg("Failed to stop consumer")
	}

	log.Info().Msg("Step consumer stopped")
}
