package scoring

import (
	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/policy"
)

// Score converts one evaluator judgment into a numeric score: the verdict's
// base value scaled by the evaluator's confidence. Unknown verdicts score 0.0
// rather than failing, and confidence is clamped to [0,1] first.
func Score(pol *policy.Policy, record models.EvaluationRecord) float64 {
	base := pol.VerdictScores[record.Verdict]

	confidence := record.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return base * confidence
}

// ScoreByCategory scores a set of records and indexes them by category.
// When duplicate categories arrive the later record wins.
func ScoreByCategory(pol *policy.Policy, records []models.EvaluationRecord) map[models.Category]float64 {
	scores := make(map[models.Category]float64, len(records))
	for _, record := range records {
		scores[record.Category] = Score(pol, record)
	}
	return scores
}
