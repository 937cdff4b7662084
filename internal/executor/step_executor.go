package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/medsimlab/woundcare-agent/internal/evaluator"
	"github.com/medsimlab/woundcare-agent/internal/mcq"
	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/progression"
	"github.com/medsimlab/woundcare-agent/internal/scenario"
	"github.com/medsimlab/woundcare-agent/internal/session"
	"github.com/rs/zerolog"
)

// ScenarioStore loads scenario definitions.
type ScenarioStore interface {
	Get(ctx context.Context, scenarioID string) (*scenario.Metadata, error)
}

// ReferenceRetriever fetches opaque guideline text for an utterance.
type ReferenceRetriever interface {
	Retrieve(ctx context.Context, query string, scenarioID string) (string, error)
}

// RecordSource produces evaluator judgments for a step attempt.
type RecordSource interface {
	Run(ctx context.Context, input evaluator.Input) []models.EvaluationRecord
}

// StepCoordinator aggregates evaluator records into a step evaluation.
type StepCoordinator interface {
	Evaluate(records []models.EvaluationRecord, step models.Step) models.StepEvaluation
}

// StepRequest is one step attempt: the learner's input plus, optionally,
// pre-produced evaluator records. When records are supplied the LLM
// evaluators are skipped entirely.
type StepRequest struct {
	UserInput string                    `json:"user_input,omitempty"`
	Records   []models.EvaluationRecord `json:"evaluator_outputs,omitempty"`
}

// StepExecutor drives one full step attempt: scenario context, reference
// retrieval, evaluator records, aggregation and the progression decision.
type StepExecutor struct {
	scenarios   ScenarioStore
	retriever   ReferenceRetriever
	records     RecordSource
	coordinator StepCoordinator
	controller  *progression.Controller
	sessions    session.Repository
	logger      *zerolog.Logger
}

func NewStepExecutor(
	scenarios ScenarioStore,
	retriever ReferenceRetriever,
	records RecordSource,
	coordinator StepCoordinator,
	controller *progression.Controller,
	sessions session.Repository,
	logger *zerolog.Logger,
) *StepExecutor {
	return &StepExecutor{
		scenarios:   scenarios,
		retriever:   retriever,
		records:     records,
		coordinator: coordinator,
		controller:  controller,
		sessions:    sessions,
		logger:      logger,
	}
}

// Execute evaluates one step attempt and applies the progression decision.
// The decision is only committed after the full evaluation completes.
func (e *StepExecutor) Execute(ctx context.Context, sessionID string, req StepRequest) (*models.Decision, error) {
	state, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Completed {
		return nil, progression.ErrSessionComplete
	}

	step := state.CurrentStep

	input := evaluator.Input{
		Transcript: req.UserInput,
		Step:       step,
	}

	if e.scenarios != nil {
		meta, err := e.scenarios.Get(ctx, state.ScenarioID)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario %s: %w", state.ScenarioID, err)
		}
		input.ScenarioTitle = meta.Title
		input.PatientHistory = meta.PatientHistory
		input.WoundDetails = meta.WoundDetails
	}

	if e.retriever != nil && req.UserInput != "" {
		text, err := e.retriever.Retrieve(ctx, req.UserInput, state.ScenarioID)
		if err != nil {
			// retrieval is best effort; evaluators degrade without it
			e.logger.Warn().Err(err).Str("session_id", sessionID).Msg("reference retrieval failed")
		} else if text != "" {
			input.ReferenceText = text
			if err := e.controller.RecordRetrieval(ctx, sessionID, models.RetrievalEntry{
				Timestamp: time.Now().UTC(),
				Step:      step,
				Query:     req.UserInput,
				Text:      text,
			}); err != nil {
				e.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to record retrieval")
			}
		}
	}

	records := req.Records
	if len(records) == 0 && e.records != nil {
		records = e.records.Run(ctx, input)
	}
	for i := range records {
		records[i].Step = step
		records[i].Normalize()
	}

	evaluation := e.coordinator.Evaluate(records, step)

	decision, err := e.controller.Apply(ctx, sessionID, evaluation)
	if err != nil {
		return nil, err
	}

	e.logger.Info().
		Str("session_id", sessionID).
		Str("step", string(step)).
		Str("status", string(decision.Status)).
		Msg("step execution complete")

	return decision, nil
}

// GradeMCQ validates a student's answers against the session's scenario
// question bank.
func (e *StepExecutor) GradeMCQ(ctx context.Context, sessionID string, answers map[string]string) (*mcq.Result, error) {
	state, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if e.scenarios == nil {
		return nil, fmt.Errorf("no scenario store configured")
	}

	meta, err := e.scenarios.Get(ctx, state.ScenarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %s: %w", state.ScenarioID, err)
	}

	result := mcq.Validate(meta.AssessmentQuestions, answers)

	e.logger.Info().
		Str("session_id", sessionID).
		Int("total", result.TotalQuestions).
		Int("correct", result.CorrectCount).
		Float64("score", result.Score).
		Msg("MCQ graded")

	return &result, nil
}
