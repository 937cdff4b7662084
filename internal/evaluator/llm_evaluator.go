package evaluator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/medsimlab/woundcare-agent/internal/config"
	"github.com/medsimlab/woundcare-agent/internal/llm"
	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/rs/zerolog"
)

// LLMEvaluator judges one category using an LLM with a configurable prompt.
type LLMEvaluator struct {
	category        models.Category
	promptTemplate  *template.Template
	modelConfig     config.ModelConfig
	requiresContext bool
	llmClient       llm.Client
	logger          *zerolog.Logger
}

// recordResponse is the JSON shape the prompt instructs the model to emit.
type recordResponse struct {
	Verdict        string   `json:"verdict"`
	Confidence     float64  `json:"confidence"`
	Strengths      []string `json:"strengths"`
	IssuesDetected []string `json:"issues_detected"`
	MissedPoints   []string `json:"missed_points"`
	Explanation    string   `json:"explanation"`
}

func NewLLMEvaluator(
	agentCfg config.AgentConfiguration,
	llmClient llm.Client,
	logger *zerolog.Logger,
) (*LLMEvaluator, error) {
	tmpl, err := template.New(agentCfg.Category).Parse(agentCfg.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template for evaluator %s: %w", agentCfg.Category, err)
	}

	if agentCfg.Model == nil {
		return nil, fmt.Errorf("evaluator %s has nil model config (should be populated by config loader)", agentCfg.Category)
	}

	return &LLMEvaluator{
		category:        models.Category(agentCfg.Category),
		promptTemplate:  tmpl,
		modelConfig:     *agentCfg.Model,
		requiresContext: agentCfg.RequiresContext,
		llmClient:       llmClient,
		logger:          logger,
	}, nil
}

func (e *LLMEvaluator) Category() models.Category {
	return e.category
}

// Evaluate runs the agent's prompt against the LLM and parses the judgment.
// Every failure path returns a structured zero-confidence record.
func (e *LLMEvaluator) Evaluate(ctx context.Context, input Input) models.EvaluationRecord {
	record := models.EvaluationRecord{
		Category:  e.category,
		Step:      input.Step,
		Verdict:   models.VerdictInappropriate,
		CreatedAt: time.Now().UTC(),
	}

	if e.requiresContext && input.ReferenceText == "" {
		e.logger.Warn().
			Str("evaluator", string(e.category)).
			Msg("evaluator requires reference text but none provided")
		record.Explanation = "Reference guidelines required but not provided"
		record.Normalize()
		return record
	}

	prompt, err := e.buildPrompt(input)
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("evaluator", string(e.category)).
			Msg("failed to build prompt from template")
		record.Explanation = fmt.Sprintf("Failed to build prompt: %v", err)
		record.Normalize()
		return record
	}

	request := llm.Request{
		Prompt:      prompt,
		MaxTokens:   e.modelConfig.MaxTokens,
		Temperature: e.modelConfig.Temperature,
	}

	var resp *llm.Response
	if e.modelConfig.Retry {
		resp, err = e.llmClient.InvokeWithRetry(ctx, request)
	} else {
		resp, err = e.llmClient.Invoke(ctx, request)
	}
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("evaluator", string(e.category)).
			Msg("LLM call failed")
		record.Explanation = "Failed to call LLM"
		record.Normalize()
		return record
	}

	content := stripMarkdownCodeBlock(resp.Content)
	var parsed recordResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		e.logger.Error().
			Err(err).
			Str("evaluator", string(e.category)).
			Str("content", resp.Content).
			Msg("failed to deserialize LLM response")
		record.Explanation = "Failed to deserialize LLM response"
		record.Normalize()
		return record
	}

	verdict := models.Verdict(parsed.Verdict)
	if verdict != models.VerdictAppropriate &&
		verdict != models.VerdictPartiallyAppropriate &&
		verdict != models.VerdictInappropriate {
		e.logger.Error().
			Str("evaluator", string(e.category)).
			Str("verdict", parsed.Verdict).
			Msg("LLM returned unknown verdict")
		record.Explanation = fmt.Sprintf("Invalid LLM response: unknown verdict %q", parsed.Verdict)
		record.Normalize()
		return record
	}

	record.Verdict = verdict
	record.Confidence = parsed.Confidence
	record.Strengths = parsed.Strengths
	record.IssuesDetected = parsed.IssuesDetected
	record.MissedPoints = parsed.MissedPoints
	record.Explanation = parsed.Explanation
	record.Normalize()

	e.logger.Info().
		Str("evaluator", string(e.category)).
		Str("verdict", string(record.Verdict)).
		Float64("confidence", record.Confidence).
		Msg("evaluator completed")

	return record
}

func (e *LLMEvaluator) buildPrompt(input Input) (string, error) {
	var buf bytes.Buffer
	if err := e.promptTemplate.Execute(&buf, input); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

// stripMarkdownCodeBlock removes markdown code fencing if present.
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
