package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/medsimlab/woundcare-agent/internal/config"
	"github.com/medsimlab/woundcare-agent/internal/coordinator"
	"github.com/medsimlab/woundcare-agent/internal/evaluator"
	"github.com/medsimlab/woundcare-agent/internal/executor"
	"github.com/medsimlab/woundcare-agent/internal/feedback"
	"github.com/medsimlab/woundcare-agent/internal/llm"
	"github.com/medsimlab/woundcare-agent/internal/llm/bedrock"
	"github.com/medsimlab/woundcare-agent/internal/llm/gpt"
	"github.com/medsimlab/woundcare-agent/internal/policy"
	"github.com/medsimlab/woundcare-agent/internal/progression"
	"github.com/medsimlab/woundcare-agent/internal/rag"
	redisconn "github.com/medsimlab/woundcare-agent/internal/redis"
	"github.com/medsimlab/woundcare-agent/internal/readiness"
	"github.com/medsimlab/woundcare-agent/internal/scenario"
	"github.com/medsimlab/woundcare-agent/internal/session"
	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel        string
	APIPort         string
	PolicyPath      string
	SessionStore    string // memory or redis
	SessionTTLHours int
	RedisAddr       string
	RedisPassword   string
	StreamName      string
	StreamGroup     string
	ConsumerName    string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	RetrieveLimit   int
	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string
}

type Dependencies struct {
	Policy      *policy.Policy
	Coordinator *coordinator.Coordinator
	Controller  *progression.Controller
	Sessions    session.Repository
	Scenarios   *scenario.Repository
	Executor    *executor.StepExecutor
	DB          *scenario.DB
	Logger      *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		APIPort:         getEnv("WOUNDCARE_API_PORT", "18090"),
		PolicyPath:      getEnv("POLICY_CONFIG_PATH", "configs/policy.yaml"),
		SessionStore:    getEnv("SESSION_STORE", "memory"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 0),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		StreamName:      getEnv("STEP_STREAM", "woundcare:steps"),
		StreamGroup:     getEnv("STEP_STREAM_GROUP", "woundcare-agent"),
		ConsumerName:    getEnv("STEP_STREAM_CONSUMER", "consumer-1"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "woundcare"),
		DBSSLMode:       getEnv("DB_SSL_MODE", "disable"),
		RetrieveLimit:   getEnvInt("RETRIEVE_LIMIT", 5),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	pol, err := policy.LoadOrDefault(cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	// Core pipeline
	engine := readiness.NewEngine(pol, logger)
	aggregator := feedback.NewAggregator(pol, logger)
	coord := coordinator.New(engine, aggregator, logger)

	// Session store
	sessions, err := createSessionRepository(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}
	controller := progression.NewController(sessions, logger)

	// Scenario store + guideline retrieval
	db, err := scenario.New(ctx, scenario.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	scenarios := scenario.NewRepository(db)
	retriever := rag.NewRetriever(db, cfg.RetrieveLimit, logger)

	// Evaluator agents are optional: without an LLM provider the service
	// still aggregates caller-supplied records.
	var records executor.RecordSource
	if runner, err := createEvaluatorRunner(ctx, cfg, logger); err != nil {
		logger.Warn().Err(err).Msg("evaluator agents disabled; records must be supplied by callers")
	} else {
		records = runner
	}

	exec := executor.NewStepExecutor(scenarios, retriever, records, coord, controller, sessions, logger)

	return &Dependencies{
		Policy:      pol,
		Coordinator: coord,
		Controller:  controller,
		Sessions:    sessions,
		Scenarios:   scenarios,
		Executor:    exec,
		DB:          db,
		Logger:      logger,
	}, nil
}

func createSessionRepository(ctx context.Context, cfg *Config, logger *zerolog.Logger) (session.Repository, error) {
	switch cfg.SessionStore {
	case "redis":
		client, err := redisconn.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, 5, logger)
		if err != nil {
			return nil, err
		}
		return session.NewRedisRepository(client, time.Duration(cfg.SessionTTLHours)*time.Hour), nil
	case "memory", "":
		return session.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.SessionStore)
	}
}

func createEvaluatorRunner(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*evaluator.Runner, error) {
	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, err
	}

	agentsConfig, err := config.LoadAgentsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load agents config: %w", err)
	}

	pool := evaluator.NewPool(llmClient, logger)
	evaluators, err := pool.BuildFromConfig(agentsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluators from config: %w", err)
	}

	return evaluator.NewRunner(evaluators, logger), nil
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.Client, error) {
	switch provider {
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}
