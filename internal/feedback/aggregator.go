package feedback

import (
	"fmt"
	"sort"
	"strings"

	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/policy"
	"github.com/rs/zerolog"
)

// negligibleWeight marks categories whose feedback is omitted from the merged
// lists. They still count toward the composite score.
const negligibleWeight = 0.1

// Aggregator merges per-category feedback into one bundle, higher-weighted
// categories first, each entry prefixed with its category for traceability.
type Aggregator struct {
	policy *policy.Policy
	logger *zerolog.Logger
}

func NewAggregator(pol *policy.Policy, logger *zerolog.Logger) *Aggregator {
	return &Aggregator{
		policy: pol,
		logger: logger,
	}
}

func (a *Aggregator) Aggregate(records []models.EvaluationRecord, step models.Step) models.FeedbackBundle {
	bundle := models.FeedbackBundle{
		Strengths:    []string{},
		Issues:       []string{},
		MissedPoints: []string{},
	}

	if len(records) == 0 {
		return bundle
	}

	byCategory := make(map[models.Category]models.EvaluationRecord, len(records))
	for _, record := range records {
		record.Normalize()
		byCategory[record.Category] = record
	}

	weights := a.policy.WeightsFor(step)
	ordered := orderByWeight(byCategory, weights)

	totalWeight := 0.0
	for _, weight := range weights {
		totalWeight += weight
	}

	var explanations []string
	for _, category := range ordered {
		weight := weights[category]
		if weight <= negligibleWeight {
			continue
		}

		record := byCategory[category]
		bundle.Strengths = append(bundle.Strengths, prefixed(category, record.Strengths)...)
		bundle.Issues = append(bundle.Issues, prefixed(category, record.IssuesDetected)...)
		bundle.MissedPoints = append(bundle.MissedPoints, prefixed(category, record.MissedPoints)...)

		if record.Explanation != "" {
			percentage := 0.0
			if totalWeight > 0 {
				percentage = weight / totalWeight * 100
			}
			explanations = append(explanations, fmt.Sprintf("[%s (%.0f%%)] %s", category, percentage, record.Explanation))
		}
	}

	bundle.OverallText = strings.Join(explanations, " ")

	a.logger.Debug().
		Str("step", string(step)).
		Int("strengths", len(bundle.Strengths)).
		Int("issues", len(bundle.Issues)).
		Msg("feedback aggregated")

	return bundle
}

func prefixed(category models.Category, entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, fmt.Sprintf("[%s] %s", category, entry))
	}
	return out
}

// orderByWeight sorts the present categories by descending step weight, with
// the canonical category order as tie-breaker so output is deterministic.
func orderByWeight(byCategory map[models.Category]models.EvaluationRecord, weights map[models.Category]float64) []models.Category {
	var ordered []models.Category
	for _, category := range models.Categories {
		if _, ok := byCategory[category]; ok {
			ordered = append(ordered, category)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return weights[ordered[i]] > weights[ordered[j]]
	})

	return ordered
}
