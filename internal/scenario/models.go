package scenario

import "fmt"

// MCQQuestion is one multiple-choice question authored on a scenario.
type MCQQuestion struct {
	ID            string            `json:"id"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation,omitempty"`
}

// Metadata is the scenario definition a session runs against.
type Metadata struct {
	ScenarioID          string            `json:"scenario_id"`
	Title               string            `json:"title"`
	PatientHistory      string            `json:"patient_history"`
	WoundDetails        string            `json:"wound_details"`
	ConversationPoints  []string          `json:"required_conversation_points,omitempty"`
	AssessmentQuestions []MCQQuestion     `json:"assessment_questions"`
	EvaluationCriteria  map[string]string `json:"evaluation_criteria"`
}

// Validate checks the fields every scenario must carry before it is stored.
func (m *Metadata) Validate() error {
	if m.ScenarioID == "" {
		return fmt.Errorf("scenario_id is required")
	}
	if m.Title == "" {
		return fmt.Errorf("title is required")
	}
	if m.PatientHistory == "" {
		return fmt.Errorf("patient_history is required")
	}
	if m.WoundDetails == "" {
		return fmt.Errorf("wound_details is required")
	}
	for i, q := range m.AssessmentQuestions {
		if q.ID == "" || q.Question == "" || q.CorrectAnswer == "" {
			return fmt.Errorf("assessment question %d must have id, question and correct_answer", i)
		}
	}
	return nil
}
