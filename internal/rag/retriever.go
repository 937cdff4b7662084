package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/medsimlab/woundcare-agent/internal/scenario"
	"github.com/rs/zerolog"
)

// Retriever looks up wound-care guideline passages for a learner utterance.
// Results are joined into one opaque reference string; consumers never see
// the individual chunks.
type Retriever struct {
	db     *scenario.DB
	limit  int
	logger *zerolog.Logger
}

func NewRetriever(db *scenario.DB, limit int, logger *zerolog.Logger) *Retriever {
	if limit <= 0 {
		limit = 5
	}
	return &Retriever{
		db:     db,
		limit:  limit,
		logger: logger,
	}
}

// Retrieve runs a ranked keyword search over the guideline chunks, optionally
// scoped to one scenario's namespace.
func (r *Retriever) Retrieve(ctx context.Context, query string, scenarioID string) (string, error) {
	sql := `
	SELECT content,
	       ts_rank(content_tsvector, plainto_tsquery('english', $1)) AS rank
	FROM guideline_chunks
	WHERE content_tsvector @@ plainto_tsquery('english', $1)
	  AND ($2 = '' OR scenario_id = $2)
	ORDER BY rank DESC
	LIMIT $3`

	rows, err := r.db.Pool.Query(ctx, sql, query, scenarioID, r.limit)
	if err != nil {
		return "", fmt.Errorf("guideline search failed: %w", err)
	}
	defer rows.Close()

	var passages []string
	for rows.Next() {
		var content string
		var rank float64
		if err := rows.Scan(&content, &rank); err != nil {
			return "", fmt.Errorf("failed to scan guideline row: %w", err)
		}
		passages = append(passages, content)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("row iteration error: %w", err)
	}

	r.logger.Debug().
		Str("scenario_id", scenarioID).
		Int("passages", len(passages)).
		Msg("guideline retrieval complete")

	return strings.Join(passages, "\n\n"), nil
}
