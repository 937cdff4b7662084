package progression

import (
	"errors"
	"fmt"

	"github.com/medsimlab/woundcare-agent/internal/models"
)

// ErrProcedureComplete is returned by NextStep on the terminal step. Callers
// must turn it into an explicit "session complete" outcome, never swallow it.
var ErrProcedureComplete = errors.New("procedure complete: no step after DRESSING")

// NextStep returns the step following s in the fixed procedure order
// HISTORY → ASSESSMENT → CLEANING → DRESSING. There is no skip or jump.
func NextStep(s models.Step) (models.Step, error) {
	for i, step := range models.StepOrder {
		if step != s {
			continue
		}
		if i == len(models.StepOrder)-1 {
			return "", ErrProcedureComplete
		}
		return models.StepOrder[i+1], nil
	}
	return "", fmt.Errorf("unknown step %q", s)
}
