package coordinator

import (
	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/rs/zerolog"
)

// ReadinessEngine computes the composite readiness verdict for a step.
type ReadinessEngine interface {
	Evaluate(records []models.EvaluationRecord, step models.Step) models.CompositeResult
}

// FeedbackAggregator merges per-category feedback for a step.
type FeedbackAggregator interface {
	Aggregate(records []models.EvaluationRecord, step models.Step) models.FeedbackBundle
}

// Coordinator runs the readiness engine and the feedback aggregator over one
// set of evaluator records and returns the combined step evaluation.
type Coordinator struct {
	engine     ReadinessEngine
	aggregator FeedbackAggregator
	logger     *zerolog.Logger
}

func New(engine ReadinessEngine, aggregator FeedbackAggregator, logger *zerolog.Logger) *Coordinator {
	return &Coordinator{
		engine:     engine,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Evaluate aggregates evaluator records for a step. It never fails: malformed
// records are defaulted at the boundary and an empty record set produces an
// explicit not-ready result. An unknown step is scored against the HISTORY
// profile and logged as a caller error.
func (c *Coordinator) Evaluate(records []models.EvaluationRecord, step models.Step) models.StepEvaluation {
	if !step.Valid() {
		c.logger.Warn().Str("step", string(step)).Msg("unknown step, falling back to HISTORY profile")
	}

	result := c.engine.Evaluate(records, step)
	bundle := c.aggregator.Aggregate(records, step)

	c.logger.Info().
		Str("step", string(step)).
		Int("records", len(records)).
		Float64("composite", result.CompositeScore).
		Bool("ready", result.ReadyForNextStep).
		Msg("step evaluation complete")

	return models.StepEvaluation{
		Result:   result,
		Feedback: bundle,
	}
}
