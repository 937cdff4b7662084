package feedback

import (
	"strings"
	"testing"

	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/policy"
	"github.com/rs/zerolog"
)

func newTestAggregator() *Aggregator {
	logger := zerolog.Nop()
	return NewAggregator(policy.Default(), &logger)
}

func TestAggregate_PrefixesAndOrdering(t *testing.T) {
	agg := newTestAggregator()

	records := []models.EvaluationRecord{
		{
			Category:  models.CategoryKnowledge,
			Step:      models.StepHistory,
			Verdict:   models.VerdictPartiallyAppropriate,
			Strengths: []string{"identified diabetes as a risk factor"},
			IssuesDetected: []string{
				"did not ask about allergies",
			},
		},
		{
			Category:     models.CategoryCommunication,
			Step:         models.StepHistory,
			Verdict:      models.VerdictAppropriate,
			Strengths:    []string{"open-ended questions"},
			MissedPoints: []string{"did not confirm patient name"},
		},
	}

	bundle := agg.Aggregate(records, models.StepHistory)

	if len(bundle.Strengths) != 2 {
		t.Fatalf("Expected 2 strengths, got %d", len(bundle.Strengths))
	}

	// Communication outweighs knowledge at HISTORY, so it comes first.
	if bundle.Strengths[0] != "[communication] open-ended questions" {
		t.Errorf("Expected communication strength first, got %q", bundle.Strengths[0])
	}
	if bundle.Strengths[1] != "[knowledge] identified diabetes as a risk factor" {
		t.Errorf("Expected knowledge strength second, got %q", bundle.Strengths[1])
	}
	if bundle.Issues[0] != "[knowledge] did not ask about allergies" {
		t.Errorf("Expected prefixed issue, got %q", bundle.Issues[0])
	}
	if bundle.MissedPoints[0] != "[communication] did not confirm patient name" {
		t.Errorf("Expected prefixed missed point, got %q", bundle.MissedPoints[0])
	}
}

func TestAggregate_NegligibleWeightExcluded(t *testing.T) {
	agg := newTestAggregator()

	// Clinical carries weight 0.1 at HISTORY and is omitted from the merged
	// lists; it still counts toward the composite elsewhere.
	records := []models.EvaluationRecord{
		{
			Category:  models.CategoryClinical,
			Step:      models.StepHistory,
			Verdict:   models.VerdictAppropriate,
			Strengths: []string{"good hand hygiene"},
		},
		{
			Category:  models.CategoryCommunication,
			Step:      models.StepHistory,
			Verdict:   models.VerdictAppropriate,
			Strengths: []string{"clear explanations"},
		},
	}

	bundle := agg.Aggregate(records, models.StepHistory)

	for _, entry := range bundle.Strengths {
		if strings.HasPrefix(entry, "[clinical]") {
			t.Errorf("Expected clinical feedback excluded at HISTORY, got %q", entry)
		}
	}
	if len(bundle.Strengths) != 1 {
		t.Errorf("Expected 1 strength, got %d", len(bundle.Strengths))
	}
}

func TestAggregate_OverallTextWeightPercentages(t *testing.T) {
	agg := newTestAggregator()

	records := []models.EvaluationRecord{
		{
			Category:    models.CategoryKnowledge,
			Step:        models.StepAssessment,
			Verdict:     models.VerdictAppropriate,
			Explanation: "Solid understanding of wound staging.",
		},
		{
			Category:    models.CategoryCommunication,
			Step:        models.StepAssessment,
			Verdict:     models.VerdictPartiallyAppropriate,
			Explanation: "Explanations were rushed.",
		},
	}

	bundle := agg.Aggregate(records, models.StepAssessment)

	// Knowledge carries 70% of the ASSESSMENT weight and leads the text.
	if !strings.HasPrefix(bundle.OverallText, "[knowledge (70%)] Solid understanding of wound staging.") {
		t.Errorf("Expected knowledge explanation first with weight share, got %q", bundle.OverallText)
	}
	if !strings.Contains(bundle.OverallText, "[communication (30%)] Explanations were rushed.") {
		t.Errorf("Expected communication explanation with weight share, got %q", bundle.OverallText)
	}
}

func TestAggregate_EmptyRecords(t *testing.T) {
	agg := newTestAggregator()

	bundle := agg.Aggregate(nil, models.StepCleaning)

	if len(bundle.Strengths) != 0 || len(bundle.Issues) != 0 || len(bundle.MissedPoints) != 0 {
		t.Error("Expected empty bundle for empty records")
	}
	if bundle.OverallText != "" {
		t.Errorf("Expected empty overall text, got %q", bundle.OverallText)
	}
	if bundle.Strengths == nil {
		t.Error("Expected empty slice, not nil")
	}
}

func TestAggregate_LaterDuplicateWins(t *testing.T) {
	agg := newTestAggregator()

	records := []models.EvaluationRecord{
		{Category: models.CategoryCommunication, Step: models.StepHistory, Strengths: []string{"first"}},
		{Category: models.CategoryCommunication, Step: models.StepHistory, Strengths: []string{"second"}},
	}

	bundle := agg.Aggregate(records, models.StepHistory)

	if len(bundle.Strengths) != 1 {
		t.Fatalf("Expected 1 strength, got %d", len(bundle.Strengths))
	}
	if bundle.Strengths[0] != "[communication] second" {
		t.Errorf("Expected later record to win, got %q", bundle.Strengths[0])
	}
}
