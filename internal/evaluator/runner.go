package evaluator

import (
	"context"
	"sync"

	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/rs/zerolog"
)

// Runner fans one step attempt out to all evaluators concurrently and
// collects their records. Evaluators are independent; order of the returned
// slice is not significant.
type Runner struct {
	evaluators []Evaluator
	logger     *zerolog.Logger
}

func NewRunner(evaluators []Evaluator, logger *zerolog.Logger) *Runner {
	return &Runner{
		evaluators: evaluators,
		logger:     logger,
	}
}

func (r *Runner) Run(ctx context.Context, input Input) []models.EvaluationRecord {
	results := make(chan models.EvaluationRecord, len(r.evaluators))
	var wg sync.WaitGroup

	for _, ev := range r.evaluators {
		wg.Add(1)
		go func(ev Evaluator) {
			defer wg.Done()
			results <- ev.Evaluate(ctx, input)
		}(ev)
	}

	wg.Wait()
	close(results)

	var records []models.EvaluationRecord
	for record := range results {
		records = append(records, record)
	}

	r.logger.Debug().
		Str("step", string(input.Step)).
		Int("records", len(records)).
		Msg("evaluator fan-out complete")

	return records
}
