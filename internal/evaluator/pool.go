package evaluator

import (
	"fmt"

	"github.com/medsimlab/woundcare-agent/internal/config"
	"github.com/medsimlab/woundcare-agent/internal/llm"
	"github.com/rs/zerolog"
)

// Pool builds the evaluator set from configuration.
type Pool struct {
	llmClient llm.Client
	logger    *zerolog.Logger
}

func NewPool(llmClient llm.Client, logger *zerolog.Logger) *Pool {
	return &Pool{
		llmClient: llmClient,
		logger:    logger,
	}
}

func (p *Pool) BuildFromConfig(cfg *config.AgentsConfig) ([]Evaluator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("agents config is nil")
	}

	var evaluators []Evaluator

	for _, agentCfg := range cfg.Agents.Evaluators {
		if !agentCfg.Enabled {
			p.logger.Info().
				Str("evaluator", agentCfg.Category).
				Msg("evaluator disabled in config, skipping")
			continue
		}

		ev, err := NewLLMEvaluator(agentCfg, p.llmClient, p.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create evaluator %s: %w", agentCfg.Category, err)
		}

		evaluators = append(evaluators, ev)

		p.logger.Info().
			Str("evaluator", agentCfg.Category).
			Int("max_tokens", agentCfg.Model.MaxTokens).
			Float64("temperature", agentCfg.Model.Temperature).
			Bool("retry", agentCfg.Model.Retry).
			Bool("requires_context", agentCfg.RequiresContext).
			Msg("evaluator created")
	}

	if len(evaluators) == 0 {
		return nil, fmt.Errorf("no enabled evaluators found in config")
	}

	p.logger.Info().
		Int("total_evaluators", len(evaluators)).
		Msg("evaluator pool built")

	return evaluators, nil
}
