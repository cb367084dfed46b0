package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore keeps ledger entries in an append-only table. Unlike the
// file store it is safe for a reporting reader to query while the
// orchestrator writes.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the ledger table if it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS campaign_ledger (
			id          BIGSERIAL PRIMARY KEY,
			number      TEXT NOT NULL,
			status      TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ledger: ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT number FROM campaign_ledger`)
	if err != nil {
		return nil, fmt.Errorf("ledger: load: %w", err)
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		out[n] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: load: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Record(ctx context.Context, e Entry) error {
	if e.Number == "" {
		return fmt.Errorf("ledger: number is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO campaign_ledger (number, status, recorded_at) VALUES ($1, $2, $3)`,
		e.Number, string(e.Status), e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("ledger: record %s: %w", e.Number, err)
	}
	return nil
}
