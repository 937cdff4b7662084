package evaluator

import (
	"context"

	"github.com/medsimlab/woundcare-agent/internal/models"
)

// Input is the context an evaluator agent judges a step attempt against.
type Input struct {
	Transcript     string
	Step           models.Step
	ScenarioTitle  string
	PatientHistory string
	WoundDetails   string
	ReferenceText  string
}

// Evaluator produces one category's judgment for a step attempt. A failed
// evaluation degrades to a zero-confidence record, never an error, so the
// aggregation pipeline always has a structured input.
type Evaluator interface {
	Evaluate(ctx context.Context, input Input) models.EvaluationRecord
	Category() models.Category
}
