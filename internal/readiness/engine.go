package readiness

import (
	"fmt"
	"strings"

	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/policy"
	"github.com/medsimlab/woundcare-agent/internal/scoring"
	"github.com/rs/zerolog"
)

// Engine combines weighted per-category scores into a composite readiness
// verdict for a step. Evaluate is pure with respect to its inputs.
type Engine struct {
	policy *policy.Policy
	logger *zerolog.Logger
}

func NewEngine(pol *policy.Policy, logger *zerolog.Logger) *Engine {
	return &Engine{
		policy: pol,
		logger: logger,
	}
}

// Evaluate computes the composite score for a step, normalizing over the
// weight of the categories actually present so a missing evaluator does not
// drag the score toward zero. Safety rules veto readiness regardless of the
// numeric score. Empty input yields an explicit not-ready result.
func (e *Engine) Evaluate(records []models.EvaluationRecord, step models.Step) models.CompositeResult {
	threshold := e.policy.ThresholdFor(step)

	result := models.CompositeResult{
		Step:           step,
		AgentScores:    map[models.Category]float64{},
		BlockingIssues: []string{},
		ThresholdUsed:  threshold,
	}

	if len(records) == 0 {
		result.Notes = "no evaluator outputs received"
		e.logger.Warn().Str("step", string(step)).Msg("evaluate called with no records")
		return result
	}

	// Later record wins on duplicate categories.
	byCategory := make(map[models.Category]models.EvaluationRecord, len(records))
	for _, record := range records {
		record.Normalize()
		byCategory[record.Category] = record
	}

	weights := e.policy.WeightsFor(step)

	weightedSum := 0.0
	availableWeight := 0.0
	for category, record := range byCategory {
		score := scoring.Score(e.policy, record)
		result.AgentScores[category] = score

		weight := weights[category]
		weightedSum += score * weight
		availableWeight += weight
	}

	if availableWeight > 0 {
		result.CompositeScore = weightedSum / availableWeight
	}

	result.BlockingIssues = e.blockingIssues(byCategory, step)
	result.ReadyForNextStep = result.CompositeScore >= threshold && len(result.BlockingIssues) == 0

	e.logger.Info().
		Str("step", string(step)).
		Float64("composite", result.CompositeScore).
		Float64("threshold", threshold).
		Int("blocking", len(result.BlockingIssues)).
		Bool("ready", result.ReadyForNextStep).
		Msg("readiness computed")

	return result
}

// blockingIssues applies the safety rules to every Inappropriate record:
// clinical failures during hands-on steps, excessive issue counts in the
// step's dominant category, and safety keywords in any issue text.
func (e *Engine) blockingIssues(byCategory map[models.Category]models.EvaluationRecord, step models.Step) []string {
	blocking := []string{}
	dominant := e.policy.DominantCategory(step)
	handsOn := step == models.StepCleaning || step == models.StepDressing

	for _, category := range models.Categories {
		record, ok := byCategory[category]
		if !ok || record.Verdict != models.VerdictInappropriate {
			continue
		}

		if handsOn && category == models.CategoryClinical {
			blocking = append(blocking, fmt.Sprintf("critical clinical issue detected by %s evaluator during %s", category, step))
		}

		if category == dominant && len(record.IssuesDetected) > e.policy.Safety.IssueLimit {
			blocking = append(blocking, fmt.Sprintf("%d issues reported by %s evaluator exceed the limit of %d for step %s",
				len(record.IssuesDetected), category, e.policy.Safety.IssueLimit, step))
		}

		for _, issue := range record.IssuesDetected {
			if keyword := e.matchKeyword(issue); keyword != "" {
				blocking = append(blocking, fmt.Sprintf("safety keyword %q reported by %s evaluator: %s", keyword, category, issue))
			}
		}
	}

	return blocking
}

func (e *Engine) matchKeyword(issue string) string {
	lowered := strings.ToLower(issue)
	for _, keyword := range e.policy.Safety.Keywords {
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return keyword
		}
	}
	return ""
}
