package readiness

import (
	"math"
	"strings"
	"testing"

	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/policy"
	"github.com/rs/zerolog"
)

func newTestEngine() *Engine {
	logger := zerolog.Nop()
	return NewEngine(policy.Default(), &logger)
}

func TestEvaluate_HistoryHappyPath(t *testing.T) {
	engine := newTestEngine()

	records := []models.EvaluationRecord{
		{Category: models.CategoryCommunication, Step: models.StepHistory, Verdict: models.VerdictAppropriate, Confidence: 0.9},
		{Category: models.CategoryKnowledge, Step: models.StepHistory, Verdict: models.VerdictPartiallyAppropriate, Confidence: 0.8},
		{Category: models.CategoryClinical, Step: models.StepHistory, Verdict: models.VerdictAppropriate, Confidence: 0.7},
	}

	result := engine.Evaluate(records, models.StepHistory)

	// (0.9*0.5 + 0.48*0.4 + 0.7*0.1) / 1.0 = 0.712
	if math.Abs(result.CompositeScore-0.712) > 1e-9 {
		t.Errorf("Expected composite 0.712, got %f", result.CompositeScore)
	}
	if !result.ReadyForNextStep {
		t.Error("Expected ready: composite above the 0.6 HISTORY threshold with no blocking issues")
	}
	if len(result.BlockingIssues) != 0 {
		t.Errorf("Expected no blocking issues, got %v", result.BlockingIssues)
	}
	if result.ThresholdUsed != 0.6 {
		t.Errorf("Expected threshold 0.6, got %f", result.ThresholdUsed)
	}
	if math.Abs(result.AgentScores[models.CategoryKnowledge]-0.48) > 1e-9 {
		t.Errorf("Expected knowledge score 0.48, got %f", result.AgentScores[models.CategoryKnowledge])
	}
}

func TestEvaluate_MissingCategoryNormalizesWeight(t *testing.T) {
	engine := newTestEngine()

	// No clinical record: composite is normalized over the 0.9 weight present,
	// so the absent evaluator does not drag the score down.
	records := []models.EvaluationRecord{
		{Category: models.CategoryCommunication, Step: models.StepHistory, Verdict: models.VerdictAppropriate, Confidence: 0.9},
		{Category: models.CategoryKnowledge, Step: models.StepHistory, Verdict: models.VerdictPartiallyAppropriate, Confidence: 0.8},
	}

	result := engine.Evaluate(records, models.StepHistory)

	expected := (0.9*0.5 + 0.48*0.4) / 0.9
	if math.Abs(result.CompositeScore-expected) > 1e-9 {
		t.Errorf("Expected composite %f, got %f", expected, result.CompositeScore)
	}
	if !result.ReadyForNextStep {
		t.Error("Expected ready with normalized composite above threshold")
	}
}

func TestEvaluate_EmptyRecordsNotReady(t *testing.T) {
	engine := newTestEngine()

	result := engine.Evaluate(nil, models.StepAssessment)

	if result.ReadyForNextStep {
		t.Error("Expected not ready for empty record set")
	}
	if result.CompositeScore != 0.0 {
		t.Errorf("Expected composite 0.0, got %f", result.CompositeScore)
	}
	if result.Notes == "" {
		t.Error("Expected explanatory note for empty record set")
	}
}

func TestEvaluate_ClinicalFailureBlocksHandsOnStep(t *testing.T) {
	engine := newTestEngine()

	records := []models.EvaluationRecord{
		{Category: models.CategoryCommunication, Step: models.StepCleaning, Verdict: models.VerdictAppropriate, Confidence: 0.9},
		{Category: models.CategoryKnowledge, Step: models.StepCleaning, Verdict: models.VerdictAppropriate, Confidence: 0.9},
		{
			Category:       models.CategoryClinical,
			Step:           models.StepCleaning,
			Verdict:        models.VerdictInappropriate,
			Confidence:     0.95,
			IssuesDetected: []string{"unsafe technique observed"},
		},
	}

	result := engine.Evaluate(records, models.StepCleaning)

	if result.ReadyForNextStep {
		t.Error("Expected blocked result for clinical failure during CLEANING")
	}
	if len(result.BlockingIssues) == 0 {
		t.Fatal("Expected blocking issues")
	}

	var clinicalBlock, keywordBlock bool
	for _, issue := range result.BlockingIssues {
		if strings.Contains(issue, "critical clinical issue") {
			clinicalBlock = true
		}
		if strings.Contains(issue, `safety keyword "unsafe"`) {
			keywordBlock = true
		}
	}
	if !clinicalBlock {
		t.Errorf("Expected hands-on clinical block, got %v", result.BlockingIssues)
	}
	if !keywordBlock {
		t.Errorf("Expected safety keyword block, got %v", result.BlockingIssues)
	}
}

func TestEvaluate_ClinicalFailureDoesNotBlockHistory(t *testing.T) {
	engine := newTestEngine()

	// Clinical is neither hands-on relevant nor dominant at HISTORY, and the
	// issue text contains no safety keyword.
	records := []models.EvaluationRecord{
		{Category: models.CategoryCommunication, Step: models.StepHistory, Verdict: models.VerdictAppropriate, Confidence: 0.9},
		{Category: models.CategoryKnowledge, Step: models.StepHistory, Verdict: models.VerdictAppropriate, Confidence: 0.9},
		{
			Category:       models.CategoryClinical,
			Step:           models.StepHistory,
			Verdict:        models.VerdictInappropriate,
			Confidence:     0.9,
			IssuesDetected: []string{"posture could be improved"},
		},
	}

	result := engine.Evaluate(records, models.StepHistory)

	if len(result.BlockingIssues) != 0 {
		t.Errorf("Expected no blocking issues at HISTORY, got %v", result.BlockingIssues)
	}
	if !result.ReadyForNextStep {
		t.Errorf("Expected ready, composite %f", result.CompositeScore)
	}
}

func TestEvaluate_IssueCountBlocksDominantCategory(t *testing.T) {
	engine := newTestEngine()

	records := []models.EvaluationRecord{
		{
			Category:   models.CategoryCommunication,
			Step:       models.StepHistory,
			Verdict:    models.VerdictInappropriate,
			Confidence: 0.9,
			IssuesDetected: []string{
				"interrupted the patient",
				"did not introduce self",
				"ignored pain cues",
			},
		},
	}

	result := engine.Evaluate(records, models.StepHistory)

	if result.ReadyForNextStep {
		t.Error("Expected blocked result")
	}

	found := false
	for _, issue := range result.BlockingIssues {
		if strings.Contains(issue, "exceed the limit") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected issue-count block for dominant communication category, got %v", result.BlockingIssues)
	}
}

func TestEvaluate_SafetyKeywordCaseInsensitive(t *testing.T) {
	engine := newTestEngine()

	records := []models.EvaluationRecord{
		{
			Category:       models.CategoryKnowledge,
			Step:           models.StepAssessment,
			Verdict:        models.VerdictInappropriate,
			Confidence:     0.9,
			IssuesDetected: []string{"Recommended a CONTRAINDICATED dressing"},
		},
	}

	result := engine.Evaluate(records, models.StepAssessment)

	if len(result.BlockingIssues) == 0 {
		t.Fatal("Expected keyword block regardless of case")
	}
}

func TestEvaluate_AppropriateVerdictNeverBlocks(t *testing.T) {
	engine := newTestEngine()

	// Safety rules only scan Inappropriate records; an Appropriate record
	// mentioning a keyword in passing must not lock the step.
	records := []models.EvaluationRecord{
		{
			Category:       models.CategoryClinical,
			Step:           models.StepDressing,
			Verdict:        models.VerdictAppropriate,
			Confidence:     0.95,
			IssuesDetected: []string{"correctly avoided the unsafe shortcut"},
		},
	}

	result := engine.Evaluate(records, models.StepDressing)

	if len(result.BlockingIssues) != 0 {
		t.Errorf("Expected no blocking issues, got %v", result.BlockingIssues)
	}
}

func TestEvaluate_ThresholdBoundaryIsReady(t *testing.T) {
	engine := newTestEngine()

	// Every category at exactly 0.6 puts the composite exactly on the
	// HISTORY threshold; readiness is inclusive.
	records := []models.EvaluationRecord{
		{Category: models.CategoryCommunication, Step: models.StepHistory, Verdict: models.VerdictAppropriate, Confidence: 0.6},
		{Category: models.CategoryKnowledge, Step: models.StepHistory, Verdict: models.VerdictAppropriate, Confidence: 0.6},
		{Category: models.CategoryClinical, Step: models.StepHistory, Verdict: models.VerdictAppropriate, Confidence: 0.6},
	}

	result := engine.Evaluate(records, models.StepHistory)

	if math.Abs(result.CompositeScore-0.6) > 1e-9 {
		t.Fatalf("Expected composite exactly 0.6, got %f", result.CompositeScore)
	}
	if !result.ReadyForNextStep {
		t.Error("Expected ready at exact threshold")
	}
}

func TestEvaluate_ConfidenceMonotonicity(t *testing.T) {
	engine := newTestEngine()

	base := func(confidence float64) models.CompositeResult {
		return engine.Evaluate([]models.EvaluationRecord{
			{Category: models.CategoryKnowledge, Step: models.StepAssessment, Verdict: models.VerdictAppropriate, Confidence: confidence},
		}, models.StepAssessment)
	}

	previous := -1.0
	for _, confidence := range []float64{0.0, 0.25, 0.5, 0.75, 1.0} {
		result := base(confidence)
		if result.CompositeScore < previous {
			t.Errorf("Composite decreased when confidence rose to %f", confidence)
		}
		if result.CompositeScore < 0.0 || result.CompositeScore > 1.0 {
			t.Errorf("Composite %f out of [0,1]", result.CompositeScore)
		}
		previous = result.CompositeScore
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	engine := newTestEngine()

	records := []models.EvaluationRecord{
		{Category: models.CategoryCommunication, Step: models.StepHistory, Verdict: models.VerdictPartiallyAppropriate, Confidence: 0.7},
		{Category: models.CategoryKnowledge, Step: models.StepHistory, Verdict: models.VerdictAppropriate, Confidence: 0.8},
	}

	first := engine.Evaluate(records, models.StepHistory)
	second := engine.Evaluate(records, models.StepHistory)

	if first.CompositeScore != second.CompositeScore {
		t.Errorf("Expected identical composites, got %f and %f", first.CompositeScore, second.CompositeScore)
	}
	if first.ReadyForNextStep != second.ReadyForNextStep {
		t.Error("Expected identical readiness")
	}
}
