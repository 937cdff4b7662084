package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/medsimlab/woundcare-agent/internal/models"
)

// MemoryRepository keeps sessions in process memory. Suitable for single
// instance deployments and tests; use the Redis repository otherwise.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.SessionState
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string]*models.SessionState),
	}
}

func (r *MemoryRepository) Put(ctx context.Context, state *models.SessionState) error {
	copied, err := cloneState(state)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[state.SessionID] = copied
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, sessionID string) (*models.SessionState, error) {
	r.mu.RLock()
	state, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return cloneState(state)
}

func (r *MemoryRepository) List(ctx context.Context, studentID string) ([]models.SessionSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := []models.SessionSummary{}
	for _, state := range r.sessions {
		if studentID != "" && state.StudentID != studentID {
			continue
		}
		summaries = append(summaries, state.Summary())
	}
	return summaries, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

// cloneState hands out deep copies so callers cannot mutate stored state
// behind the controller's back.
func cloneState(state *models.SessionState) (*models.SessionState, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	var copied models.SessionState
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, err
	}
	return &copied, nil
}
