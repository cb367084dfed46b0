package summary

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresStore keeps one row per record, eliminating the full-file-rewrite
// hazard of the JSON document store.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the summaries table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS call_summaries (
			id              BIGSERIAL PRIMARY KEY,
			number          TEXT NOT NULL,
			recorded_at     TEXT NOT NULL,
			summary         TEXT NOT NULL,
			structured_data JSONB NOT NULL DEFAULT '{}'::jsonb
		)`)
	if err != nil {
		return fmt.Errorf("summary: ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, r Record) error {
	if r.Number == "" {
		return fmt.Errorf("summary: number is required")
	}
	if r.StructuredData == nil {
		r.StructuredData = StructuredData{}
	}
	data, err := json.Marshal(r.StructuredData)
	if err != nil {
		return fmt.Errorf("summary: marshal structured data: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO call_summaries (number, recorded_at, summary, structured_data) VALUES ($1, $2, $3, $4)`,
		r.Number, r.Timestamp, r.Summary, data,
	)
	if err != nil {
		return fmt.Errorf("summary: append %s: %w", r.Number, err)
	}
	return nil
}
