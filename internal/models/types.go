package models

import (
	"time"
)

// Step is one phase of the wound care procedure.
type Step string

const (
	StepHistory    Step = "HISTORY"
	StepAssessment Step = "ASSESSMENT"
	StepCleaning   Step = "CLEANING"
	StepDressing   Step = "DRESSING"
)

// StepOrder is the fixed procedure sequence. Progression never skips or
// regresses; the last entry is terminal.
var StepOrder = []Step{StepHistory, StepAssessment, StepCleaning, StepDressing}

func (s Step) Valid() bool {
	for _, known := range StepOrder {
		if s == known {
			return true
		}
	}
	return false
}

// Category identifies which concern an evaluator judgment addresses.
type Category string

const (
	CategoryCommunication Category = "communication"
	CategoryKnowledge     Category = "knowledge"
	CategoryClinical      Category = "clinical"
)

var Categories = []Category{CategoryCommunication, CategoryKnowledge, CategoryClinical}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Verdict string

const (
	VerdictAppropriate          Verdict = "Appropriate"
	VerdictPartiallyAppropriate Verdict = "Partially Appropriate"
	VerdictInappropriate        Verdict = "Inappropriate"
)

// EvaluationRecord is one evaluator's judgment for one step attempt. Records
// are created once at the system boundary and never mutated afterwards;
// aggregation derives new structures from them.
type EvaluationRecord struct {
	Category       Category  `json:"category" jsonschema:"required,description=Judgment dimension (communication, knowledge, clinical)"`
	Step           Step      `json:"step" jsonschema:"required,description=Procedure phase being judged"`
	Verdict        Verdict   `json:"verdict" jsonschema:"required,description=Categorical judgment outcome"`
	Confidence     float64   `json:"confidence" jsonschema:"description=Evaluator self-reported certainty in [0,1]"`
	Strengths      []string  `json:"strengths"`
	IssuesDetected []string  `json:"issues_detected"`
	MissedPoints   []string  `json:"missed_points"`
	Explanation    string    `json:"explanation"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// Normalize clamps and defaults a record in place so downstream code never
// sees nil slices or out-of-range confidence. Malformed input degrades to a
// zero-contribution record instead of failing.
func (r *EvaluationRecord) Normalize() {
	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.IssuesDetected == nil {
		r.IssuesDetected = []string{}
	}
	if r.MissedPoints == nil {
		r.MissedPoints = []string{}
	}
}

// CompositeResult is the readiness engine's output for one step attempt.
type CompositeResult struct {
	Step             Step                 `json:"step"`
	AgentScores      map[Category]float64 `json:"agent_scores"`
	CompositeScore   float64              `json:"composite_score"`
	BlockingIssues   []string             `json:"blocking_issues"`
	ReadyForNextStep bool                 `json:"ready_for_next_step"`
	ThresholdUsed    float64              `json:"threshold_used"`
	Notes            string               `json:"notes,omitempty"`
}

// FeedbackBundle is the merged, category-prefixed feedback across evaluators.
type FeedbackBundle struct {
	Strengths    []string `json:"strengths"`
	Issues       []string `json:"issues_detected"`
	MissedPoints []string `json:"missed_points"`
	OverallText  string   `json:"overall_text"`
}

// StepEvaluation bundles the numeric verdict with the merged feedback.
type StepEvaluation struct {
	Result   CompositeResult `json:"result"`
	Feedback FeedbackBundle  `json:"feedback"`
}

// DecisionStatus is the progression outcome returned to callers.
type DecisionStatus string

const (
	StatusAdvanced DecisionStatus = "ADVANCED"
	StatusRetry    DecisionStatus = "RETRY"
	StatusLocked   DecisionStatus = "LOCKED"
	StatusComplete DecisionStatus = "COMPLETE"
)

// Decision is the controller's answer to one step evaluation.
type Decision struct {
	Status       DecisionStatus `json:"status"`
	PreviousStep Step           `json:"previous_step,omitempty"`
	CurrentStep  Step           `json:"current_step"`
	Attempt      int            `json:"attempt,omitempty"`
	Reason       string         `json:"reason,omitempty"`
	Guidance     string         `json:"retry_guidance,omitempty"`
	Feedback     StepEvaluation `json:"feedback"`
}

// LogEntry is one audit record on a session.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Step      Step           `json:"step"`
	UserInput string         `json:"user_input,omitempty"`
	Status    DecisionStatus `json:"status,omitempty"`
	Note      string         `json:"note,omitempty"`
}

// RetrievalEntry records one reference lookup made for a session.
type RetrievalEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Step      Step      `json:"step"`
	Query     string    `json:"query"`
	Text      string    `json:"text"`
}

// SessionState is one active learner attempt. The progression controller is
// the sole writer of CurrentStep, AttemptCount, Locked and Completed.
type SessionState struct {
	SessionID      string           `json:"session_id"`
	ScenarioID     string           `json:"scenario_id"`
	StudentID      string           `json:"student_id"`
	CurrentStep    Step             `json:"current_step"`
	AttemptCount   map[Step]int     `json:"attempt_count"`
	Locked         bool             `json:"locked"`
	Completed      bool             `json:"completed"`
	LastEvaluation *CompositeResult `json:"last_evaluation,omitempty"`
	Logs           []LogEntry       `json:"logs,omitempty"`
	RetrievalLog   []RetrievalEntry `json:"retrieval_log,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// SessionSummary is the list view of a session.
type SessionSummary struct {
	SessionID   string    `json:"session_id"`
	ScenarioID  string    `json:"scenario_id"`
	StudentID   string    `json:"student_id"`
	CurrentStep Step      `json:"current_step"`
	Locked      bool      `json:"locked"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *SessionState) Summary() SessionSummary {
	return SessionSummary{
		SessionID:   s.SessionID,
		ScenarioID:  s.ScenarioID,
		StudentID:   s.StudentID,
		CurrentStep: s.CurrentStep,
		Locked:      s.Locked,
		Completed:   s.Completed,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
