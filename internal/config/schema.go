package config

import (
	"fmt"

	"github.com/medsimlab/woundcare-agent/internal/models"
)

// AgentsConfig is the root of configs/agents.yaml.
type AgentsConfig struct {
	Agents Agents `yaml:"agents"`
}

type Agents struct {
	DefaultModel ModelConfig          `yaml:"default_model"`
	Evaluators   []AgentConfiguration `yaml:"evaluators"`
}

// ModelConfig tunes the LLM call made by one evaluator agent.
type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Retry       bool    `yaml:"retry"`
}

// AgentConfiguration defines one category evaluator: its prompt template and
// model parameters.
type AgentConfiguration struct {
	Category        string       `yaml:"category"`
	Enabled         bool         `yaml:"enabled"`
	Prompt          string       `yaml:"prompt"`
	RequiresContext bool         `yaml:"requires_context"`
	Model           *ModelConfig `yaml:"model,omitempty"`
}

func (c *AgentsConfig) Validate() error {
	if len(c.Agents.Evaluators) == 0 {
		return fmt.Errorf("agents config must define at least one evaluator")
	}

	seen := map[string]bool{}
	for _, agent := range c.Agents.Evaluators {
		if !models.Category(agent.Category).Valid() {
			return fmt.Errorf("evaluator %q: unknown category", agent.Category)
		}
		if seen[agent.Category] {
			return fmt.Errorf("evaluator category %q defined twice", agent.Category)
		}
		seen[agent.Category] = true

		if agent.Prompt == "" {
			return fmt.Errorf("evaluator %q: prompt is required", agent.Category)
		}
	}

	return nil
}
