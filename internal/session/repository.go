package session

import (
	"context"
	"errors"

	"github.com/medsimlab/woundcare-agent/internal/models"
)

// ErrNotFound is returned when a session id has no stored state.
var ErrNotFound = errors.New("session not found")

// Repository is the storage capability the progression controller depends on.
// Backing stores only need simple key-value semantics keyed by session id.
type Repository interface {
	Put(ctx context.Context, state *models.SessionState) error
	Get(ctx context.Context, sessionID string) (*models.SessionState, error)
	List(ctx context.Context, studentID string) ([]models.SessionSummary, error)
	Delete(ctx context.Context, sessionID string) error
}
