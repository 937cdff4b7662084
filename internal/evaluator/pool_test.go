package evaluator

import (
	"testing"

	"github.com/medsimlab/woundcare-agent/internal/config"
	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/rs/zerolog"
)

func TestBuildFromConfig_SkipsDisabled(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewPool(&MockLLMClient{}, &logger)

	disabled := testAgentConfig("knowledge")
	disabled.Enabled = false

	cfg := &config.AgentsConfig{
		Agents: config.Agents{
			Evaluators: []config.AgentConfiguration{
				testAgentConfig("communication"),
				disabled,
				testAgentConfig("clinical"),
			},
		},
	}

	evaluators, err := pool.BuildFromConfig(cfg)
	if err != nil {
		t.Fatalf("BuildFromConfig failed: %v", err)
	}

	if len(evaluators) != 2 {
		t.Fatalf("Expected 2 evaluators, got %d", len(evaluators))
	}
	if evaluators[0].Category() != models.CategoryCommunication {
		t.Errorf("Expected communication first, got %s", evaluators[0].Category())
	}
	if evaluators[1].Category() != models.CategoryClinical {
		t.Errorf("Expected clinical second, got %s", evaluators[1].Category())
	}
}

func TestBuildFromConfig_NoneEnabled(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewPool(&MockLLMClient{}, &logger)

	disabled := testAgentConfig("communication")
	disabled.Enabled = false

	cfg := &config.AgentsConfig{
		Agents: config.Agents{
			Evaluators: []config.AgentConfiguration{disabled},
		},
	}

	if _, err := pool.BuildFromConfig(cfg); err == nil {
		t.Error("Expected error when no evaluators are enabled")
	}
}

func TestBuildFromConfig_NilConfig(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewPool(&MockLLMClient{}, &logger)

	if _, err := pool.BuildFromConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestBuildFromConfig_BadTemplateFails(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewPool(&MockLLMClient{}, &logger)

	bad := testAgentConfig("communication")
	bad.Prompt = "{{.Broken"

	cfg := &config.AgentsConfig{
		Agents: config.Agents{
			Evaluators: []config.AgentConfiguration{bad},
		},
	}

	if _, err := pool.BuildFromConfig(cfg); err == nil {
		t.Error("Expected error for broken prompt template")
	}
}
