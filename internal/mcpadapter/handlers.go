package mcpadapter

import (
	"context"

	"github.com/medsimlab/woundcare-agent/internal/executor"
	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AggregateInput is the MCP tool input schema for stateless aggregation.
type AggregateInput struct {
	Step    string                    `json:"step" jsonschema:"procedure step: HISTORY, ASSESSMENT, CLEANING or DRESSING"`
	Records []models.EvaluationRecord `json:"evaluator_outputs" jsonschema:"evaluator judgments to aggregate"`
}

// SessionStepInput is the MCP tool input schema for a session step attempt.
type SessionStepInput struct {
	SessionID string                    `json:"session_id" jsonschema:"session identifier"`
	UserInput string                    `json:"user_input,omitempty" jsonschema:"learner transcript for this step attempt"`
	Records   []models.EvaluationRecord `json:"evaluator_outputs,omitempty" jsonschema:"pre-produced evaluator judgments; LLM evaluators run when omitted"`
}

// NewAggregateHandler returns a tool handler over the given coordinator.
// Pass the returned function to mcp.AddTool.
func NewAggregateHandler(coordinator executor.StepCoordinator) func(context.Context, *mcp.CallToolRequest, AggregateInput) (*mcp.CallToolResult, models.StepEvaluation, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AggregateInput) (*mcp.CallToolResult, models.StepEvaluation, error) {
		evaluation := coordinator.Evaluate(input.Records, models.Step(input.Step))
		return nil, evaluation, nil
	}
}

// NewSessionStepHandler returns a tool handler that runs one step attempt
// through the step executor and applies the progression decision.
func NewSessionStepHandler(exec *executor.StepExecutor) func(context.Context, *mcp.CallToolRequest, SessionStepInput) (*mcp.CallToolResult, models.Decision, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SessionStepInput) (*mcp.CallToolResult, models.Decision, error) {
		decision, err := exec.Execute(ctx, input.SessionID, executor.StepRequest{
			UserInput: input.UserInput,
			Records:   input.Records,
		})
		if err != nil {
			return nil, models.Decision{}, err
		}
		return nil, *decision, nil
	}
}
