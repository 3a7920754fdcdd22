// Package postgres persists analysis runs. Schema is created idempotently so
// the CLI can point at an empty database.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"driftlens/domain/core"
	"driftlens/domain/drift"
	"driftlens/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id               TEXT PRIMARY KEY,
	numeric_strategy TEXT NOT NULL,
	alpha            DOUBLE PRECISION NOT NULL,
	ignore_fields    JSONB,
	result_table     JSONB NOT NULL,
	fingerprint      TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
)`

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// Connect opens a database handle and ensures the schema exists
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return db, nil
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// Save inserts a completed run
func (r *runRepository) Save(ctx context.Context, run *drift.Run) error {
	tableJSON, err := json.Marshal(run.Table)
	if err != nil {
		return fmt.Errorf("failed to marshal result table: %w", err)
	}
	ignoreJSON, err := json.Marshal(run.IgnoreFields)
	if err != nil {
		return fmt.Errorf("failed to marshal ignore list: %w", err)
	}

	query := `INSERT INTO analysis_runs (
		id, numeric_strategy, alpha, ignore_fields, result_table, fingerprint, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		run.ID.String(), run.NumericStrategy, run.Alpha, ignoreJSON, tableJSON,
		run.Fingerprint.String(), run.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*drift.Run, error) {
	query := `SELECT
		id, numeric_strategy, alpha, COALESCE(ignore_fields, 'null') as ignore_fields,
		result_table, fingerprint, created_at
	FROM analysis_runs WHERE id = $1`

	run, err := r.scanRun(r.db.QueryRowxContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRecent retrieves the most recent runs, newest first
func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]*drift.Run, error) {
	query := `SELECT
		id, numeric_strategy, alpha, COALESCE(ignore_fields, 'null') as ignore_fields,
		result_table, fingerprint, created_at
	FROM analysis_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*drift.Run
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// rowScanner is satisfied by both *sqlx.Row and *sqlx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *runRepository) scanRun(row rowScanner) (*drift.Run, error) {
	var (
		run         drift.Run
		id          string
		fingerprint string
		ignoreJSON  []byte
		tableJSON   []byte
		createdAt   sql.NullTime
	)

	err := row.Scan(&id, &run.NumericStrategy, &run.Alpha, &ignoreJSON, &tableJSON, &fingerprint, &createdAt)
	if err != nil {
		return nil, err
	}

	run.ID = core.RunID(id)
	run.Fingerprint = core.Hash(fingerprint)
	if createdAt.Valid {
		run.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	if err := json.Unmarshal(ignoreJSON, &run.IgnoreFields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ignore list: %w", err)
	}
	if err := json.Unmarshal(tableJSON, &run.Table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result table: %w", err)
	}
	return &run, nil
}
