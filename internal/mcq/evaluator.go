package mcq

import (
	"fmt"
	"strings"

	"github.com/medsimlab/woundcare-agent/internal/scenario"
)

// QuestionFeedback explains one graded answer.
type QuestionFeedback struct {
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	Correct       bool   `json:"correct"`
	StudentAnswer string `json:"student_answer,omitempty"`
	CorrectAnswer string `json:"correct_answer"`
	Feedback      string `json:"feedback"`
	Explanation   string `json:"explanation,omitempty"`
}

// Result is the graded outcome of one MCQ submission.
type Result struct {
	TotalQuestions int                `json:"total_questions"`
	CorrectCount   int                `json:"correct_count"`
	IncorrectCount int                `json:"incorrect_count"`
	Unanswered     int                `json:"unanswered_count"`
	Score          float64            `json:"score"`
	PerQuestion    []QuestionFeedback `json:"per_question_feedback"`
}

// Validate grades student answers against the scenario's question bank.
// Unanswered questions count as incorrect but are reported separately.
func Validate(questions []scenario.MCQQuestion, answers map[string]string) Result {
	result := Result{
		TotalQuestions: len(questions),
		PerQuestion:    []QuestionFeedback{},
	}

	if len(questions) == 0 {
		return result
	}

	for _, question := range questions {
		feedback := QuestionFeedback{
			QuestionID:    question.ID,
			QuestionText:  question.Question,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
		}

		answer, ok := answers[question.ID]
		switch {
		case !ok || answer == "":
			result.Unanswered++
			feedback.Feedback = "Question not answered"

		case strings.EqualFold(answer, question.CorrectAnswer):
			result.CorrectCount++
			feedback.Correct = true
			feedback.StudentAnswer = answer
			feedback.Feedback = "Correct answer"

		default:
			result.IncorrectCount++
			feedback.StudentAnswer = answer
			feedback.Feedback = fmt.Sprintf("Incorrect. The correct answer is %s", question.CorrectAnswer)
		}

		result.PerQuestion = append(result.PerQuestion, feedback)
	}

	result.Score = float64(result.CorrectCount) / float64(result.TotalQuestions)
	return result
}

// Contribution scales an MCQ score by its weight in the knowledge dimension.
func Contribution(score float64, weight float64) float64 {
	return score * weight
}

// Summary renders a short performance line for learner feedback.
func Summary(result Result) string {
	if result.TotalQuestions == 0 {
		return "No MCQ questions available"
	}

	band := "Needs improvement"
	switch {
	case result.Score >= 0.8:
		band = "Excellent"
	case result.Score >= 0.6:
		band = "Good"
	case result.Score >= 0.4:
		band = "Fair"
	}

	return fmt.Sprintf("%s: %d/%d correct (%.0f%%)", band, result.CorrectCount, result.TotalQuestions, result.Score*100)
}
