package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a scenario id has no stored definition.
var ErrNotFound = errors.New("scenario not found")

// Repository persists scenario definitions. Question banks and criteria are
// stored as JSONB payloads; the row carries the searchable columns.
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, meta *Metadata) error {
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid scenario payload: %w", err)
	}

	payload, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to serialize scenario %s: %w", meta.ScenarioID, err)
	}

	query := `
	INSERT INTO scenarios (id, title, payload, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET title = $2, payload = $3`

	if _, err := r.db.Pool.Exec(ctx, query, meta.ScenarioID, meta.Title, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store scenario %s: %w", meta.ScenarioID, err)
	}

	log.Info().Str("scenario_id", meta.ScenarioID).Msg("Scenario stored")
	return nil
}

func (r *Repository) Get(ctx context.Context, scenarioID string) (*Metadata, error) {
	query := `SELECT payload FROM scenarios WHERE id = $1`

	var payload []byte
	err := r.db.Pool.QueryRow(ctx, query, scenarioID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load scenario %s: %w", scenarioID, err)
	}

	var meta Metadata
	if err := json.Unmarshal(payload, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", scenarioID, err)
	}
	return &meta, nil
}

func (r *Repository) List(ctx context.Context) ([]Metadata, error) {
	query := `SELECT payload FROM scenarios ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []Metadata
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}

		var meta Metadata
		if err := json.Unmarshal(payload, &meta); err != nil {
			return nil, fmt.Errorf("failed to decode scenario row: %w", err)
		}
		scenarios = append(scenarios, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return scenarios, nil
}

func (r *Repository) Delete(ctx context.Context, scenarioID string) error {
	query := `DELETE FROM scenarios WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, scenarioID)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", scenarioID, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	log.Info().Str("scenario_id", scenarioID).Msg("Scenario deleted")
	return nil
}
