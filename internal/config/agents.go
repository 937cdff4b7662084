package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

func LoadAgentsConfig() (*AgentsConfig, error) {
	path := os.Getenv("AGENTS_CONFIG_PATH")
	if path == "" {
		path = "configs/agents.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AgentsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *AgentsConfig) {
	if cfg.Agents.DefaultModel.MaxTokens == 0 {
		cfg.Agents.DefaultModel.MaxTokens = 512
	}

	for i := range cfg.Agents.Evaluators {
		agent := &cfg.Agents.Evaluators[i]
		if agent.Model == nil {
			model := cfg.Agents.DefaultModel
			agent.Model = &model
		}
		if agent.Model.MaxTokens == 0 {
			agent.Model.MaxTokens = cfg.Agents.DefaultModel.MaxTokens
		}
	}
}
