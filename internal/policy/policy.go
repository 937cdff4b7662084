package policy

import (
	"fmt"

	"github.com/medsimlab/woundcare-agent/internal/models"
)

// Policy is the single tunable surface for instructors: verdict scores,
// per-step weights and thresholds, and the safety rules. Values live in
// configs/policy.yaml; Default() carries the shipped constants.
type Policy struct {
	VerdictScores map[models.Verdict]float64  `yaml:"verdict_scores"`
	Steps         map[models.Step]StepProfile `yaml:"steps"`
	Safety        SafetyConfig                `yaml:"safety"`
	MCQWeight     float64                     `yaml:"mcq_weight"`
}

// StepProfile holds the weighting and readiness threshold for one step.
type StepProfile struct {
	Threshold float64                        `yaml:"threshold"`
	Weights   map[models.Category]float64 `yaml:"weights"`
}

// SafetyConfig drives the hard-veto rules in the readiness engine.
type SafetyConfig struct {
	Keywords   []string `yaml:"keywords"`
	IssueLimit int      `yaml:"issue_limit"`
}

// Default returns the shipped policy constants.
func Default() *Policy {
	return &Policy{
		VerdictScores: map[models.Verdict]float64{
			models.VerdictAppropriate:          1.0,
			models.VerdictPartiallyAppropriate: 0.6,
			models.VerdictInappropriate:        0.0,
		},
		Steps: map[models.Step]StepProfile{
			models.StepHistory: {
				Threshold: 0.6,
				Weights: map[models.Category]float64{
					models.CategoryCommunication: 0.5,
					models.CategoryKnowledge:     0.4,
					models.CategoryClinical:      0.1,
				},
			},
			models.StepAssessment: {
				Threshold: 0.6,
				Weights: map[models.Category]float64{
					models.CategoryCommunication: 0.3,
					models.CategoryKnowledge:     0.7,
					models.CategoryClinical:      0.0,
				},
			},
			models.StepCleaning: {
				Threshold: 0.7,
				Weights: map[models.Category]float64{
					models.CategoryCommunication: 0.1,
					models.CategoryKnowledge:     0.1,
					models.CategoryClinical:      0.8,
				},
			},
			models.StepDressing: {
				Threshold: 0.7,
				Weights: map[models.Category]float64{
					models.CategoryCommunication: 0.1,
					models.CategoryKnowledge:     0.1,
					models.CategoryClinical:      0.8,
				},
			},
		},
		Safety: SafetyConfig{
			Keywords:   []string{"unsafe", "dangerous", "contraindicated", "error"},
			IssueLimit: 2,
		},
		MCQWeight: 0.4,
	}
}

// ProfileFor returns the weight/threshold profile for a step. Unknown steps
// fall back to the HISTORY profile; callers that need strict behavior must
// validate the step upstream.
func (p *Policy) ProfileFor(step models.Step) StepProfile {
	if profile, ok := p.Steps[step]; ok {
		return profile
	}
	return p.Steps[models.StepHistory]
}

// WeightsFor returns the category weights for a step.
func (p *Policy) WeightsFor(step models.Step) map[models.Category]float64 {
	return p.ProfileFor(step).Weights
}

// ThresholdFor returns the readiness threshold for a step.
func (p *Policy) ThresholdFor(step models.Step) float64 {
	return p.ProfileFor(step).Threshold
}

// DominantCategory returns the category with the highest weight for a step.
func (p *Policy) DominantCategory(step models.Step) models.Category {
	weights := p.WeightsFor(step)
	dominant := models.CategoryCommunication
	best := -1.0
	for _, category := range models.Categories {
		if weights[category] > best {
			best = weights[category]
			dominant = category
		}
	}
	return dominant
}

func (p *Policy) Validate() error {
	if _, ok := p.Steps[models.StepHistory]; !ok {
		return fmt.Errorf("policy must define the %s profile (fallback for unknown steps)", models.StepHistory)
	}

	for step, profile := range p.Steps {
		if profile.Threshold < 0.0 || profile.Threshold > 1.0 {
			return fmt.Errorf("step %s: threshold %.2f out of range [0.0, 1.0]", step, profile.Threshold)
		}
		for category, weight := range profile.Weights {
			if weight < 0.0 {
				return fmt.Errorf("step %s: negative weight %.2f for category %s", step, weight, category)
			}
		}
	}

	for verdict, score := range p.VerdictScores {
		if score < 0.0 || score > 1.0 {
			return fmt.Errorf("verdict %s: score %.2f out of range [0.0, 1.0]", verdict, score)
		}
	}

	if p.Safety.IssueLimit < 0 {
		return fmt.Errorf("safety issue_limit must not be negative")
	}

	return nil
}
