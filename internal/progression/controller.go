package progression

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/medsimlab/woundcare-agent/internal/models"
	"github.com/medsimlab/woundcare-agent/internal/session"
	"github.com/rs/zerolog"
)

// ErrSessionComplete is returned when a step result is applied to a session
// whose procedure already finished.
var ErrSessionComplete = errors.New("session already complete")

// Controller owns session progression: it is the sole writer of CurrentStep,
// AttemptCount, Locked and Completed. All mutations for one session run under
// a per-session lock so concurrent requests cannot lose updates; sessions are
// independent and proceed in parallel.
type Controller struct {
	repo   session.Repository
	logger *zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewController(repo session.Repository, logger *zerolog.Logger) *Controller {
	return &Controller{
		repo:   repo,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex guarding one session's read-modify-write.
func (c *Controller) sessionLock(sessionID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[sessionID] = lock
	}
	return lock
}

// CreateSession starts a new attempt at HISTORY with zero attempts and no lock.
func (c *Controller) CreateSession(ctx context.Context, scenarioID string, studentID string) (*models.SessionState, error) {
	now := time.Now().UTC()
	state := &models.SessionState{
		SessionID:    fmt.Sprintf("sess_%s_%d", studentID, now.UnixNano()),
		ScenarioID:   scenarioID,
		StudentID:    studentID,
		CurrentStep:  models.StepHistory,
		AttemptCount: map[models.Step]int{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.repo.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to store new session: %w", err)
	}

	c.logger.Info().
		Str("session_id", state.SessionID).
		Str("scenario_id", scenarioID).
		Str("student_id", studentID).
		Msg("session created")

	return state, nil
}

// Apply drives the progression decision for one completed step evaluation:
// blocking issues lock the step, a not-ready result counts a retry, and a
// ready result advances the state machine. State is stored before the
// decision is returned, and only after the evaluation is complete, so a
// caller that gives up early never observes a half-applied decision.
func (c *Controller) Apply(ctx context.Context, sessionID string, eval models.StepEvaluation) (*models.Decision, error) {
	lock := c.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := c.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if state.Completed {
		return nil, ErrSessionComplete
	}

	step := state.CurrentStep
	now := time.Now().UTC()
	result := eval.Result
	state.LastEvaluation = &result
	state.UpdatedAt = now

	var decision *models.Decision
	switch {
	case state.Locked:
		// A locked step stays locked until an explicit unlock; evaluations
		// are recorded but never advance or count attempts.
		decision = &models.Decision{
			Status:      models.StatusLocked,
			CurrentStep: step,
			Reason:      "session is locked pending instructor review",
			Feedback:    eval,
		}

	case len(result.BlockingIssues) > 0:
		state.Locked = true
		decision = &models.Decision{
			Status:      models.StatusLocked,
			CurrentStep: step,
			Reason:      "critical safety issue detected: " + strings.Join(result.BlockingIssues, "; "),
			Feedback:    eval,
		}

	case !result.ReadyForNextStep:
		state.AttemptCount[step]++
		decision = &models.Decision{
			Status:      models.StatusRetry,
			CurrentStep: step,
			Attempt:     state.AttemptCount[step],
			Guidance:    retryGuidance(eval),
			Feedback:    eval,
		}

	default:
		next, err := NextStep(step)
		if errors.Is(err, ErrProcedureComplete) {
			state.Completed = true
			decision = &models.Decision{
				Status:       models.StatusComplete,
				PreviousStep: step,
				CurrentStep:  step,
				Reason:       "all procedure steps passed",
				Feedback:     eval,
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot advance session %s: %w", sessionID, err)
		}

		state.CurrentStep = next
		state.AttemptCount[next] = 0
		state.Locked = false
		decision = &models.Decision{
			Status:       models.StatusAdvanced,
			PreviousStep: step,
			CurrentStep:  next,
			Feedback:     eval,
		}
	}

	state.Logs = append(state.Logs, models.LogEntry{
		Timestamp: now,
		Step:      step,
		Status:    decision.Status,
	})

	if err := c.repo.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to store session %s: %w", sessionID, err)
	}

	c.logger.Info().
		Str("session_id", sessionID).
		Str("step", string(step)).
		Str("status", string(decision.Status)).
		Float64("composite", result.CompositeScore).
		Msg("progression decision applied")

	return decision, nil
}

// Unlock clears the safety lock on a session. This is an explicit external
// action; locks never clear themselves.
func (c *Controller) Unlock(ctx context.Context, sessionID string) (*models.SessionState, error) {
	lock := c.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := c.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !state.Locked {
		return state, nil
	}

	now := time.Now().UTC()
	state.Locked = false
	state.UpdatedAt = now
	state.Logs = append(state.Logs, models.LogEntry{
		Timestamp: now,
		Step:      state.CurrentStep,
		Note:      "lock cleared by external unlock",
	})

	if err := c.repo.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to store session %s: %w", sessionID, err)
	}

	c.logger.Info().Str("session_id", sessionID).Msg("session unlocked")
	return state, nil
}

// RecordRetrieval appends a reference-lookup audit entry to the session.
func (c *Controller) RecordRetrieval(ctx context.Context, sessionID string, entry models.RetrievalEntry) error {
	lock := c.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := c.repo.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	state.RetrievalLog = append(state.RetrievalLog, entry)
	state.UpdatedAt = time.Now().UTC()
	return c.repo.Put(ctx, state)
}

// retryGuidance turns the highest-priority issues and missed points into a
// short instruction for the learner's next attempt.
func retryGuidance(eval models.StepEvaluation) string {
	var parts []string
	if len(eval.Feedback.Issues) > 0 {
		limit := min(len(eval.Feedback.Issues), 3)
		parts = append(parts, "address: "+strings.Join(eval.Feedback.Issues[:limit], "; "))
	}
	if len(eval.Feedback.MissedPoints) > 0 {
		limit := min(len(eval.Feedback.MissedPoints), 3)
		parts = append(parts, "cover: "+strings.Join(eval.Feedback.MissedPoints[:limit], "; "))
	}
	if len(parts) == 0 {
		return "review the step and try again"
	}
	return strings.Join(parts, " | ")
}
