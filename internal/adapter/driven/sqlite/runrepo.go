package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ericfisherdev/agencysampler/internal/domain/model"
	"github.com/ericfisherdev/agencysampler/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RunJournal = (*RunRepo)(nil)

// RunRepo is the SQLite implementation of the RunJournal port interface.
type RunRepo struct {
	db *DB
}

// NewRunRepo creates a new RunRepo backed by the given DB.
func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// StartRun inserts a new run row.
func (r *RunRepo) StartRun(ctx context.Context, run model.SampleRun) error {
	const query = `
		INSERT INTO runs (id, agency_file, started_at, agencies_total, agencies_failed)
		VALUES (?, ?, ?, ?, 0)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		run.ID, run.AgencyFile, run.StartedAt.UTC(), run.AgenciesTotal,
	)
	if err != nil {
		return fmt.Errorf("start run %s: %w", run.ID, err)
	}

	return nil
}

// RecordOutcome appends the outcome for a single agency.
func (r *RunRepo) RecordOutcome(ctx context.Context, outcome model.AgencyOutcome) error {
	const query = `
		INSERT INTO agency_outcomes (run_id, agency, article_count, status, error, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		outcome.RunID, outcome.Agency, outcome.ArticleCount,
		string(outcome.Status), outcome.Error, outcome.ProcessedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record outcome for %q in run %s: %w", outcome.Agency, outcome.RunID, err)
	}

	return nil
}

// FinishRun marks a run complete with its failure count.
func (r *RunRepo) FinishRun(ctx context.Context, runID string, finishedAt time.Time, agenciesFailed int) error {
	const query = `UPDATE runs SET finished_at = ?, agencies_failed = ? WHERE id = ?`

	res, err := r.db.Writer.ExecContext(ctx, query, finishedAt.UTC(), agenciesFailed, runID)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", runID, err)
	}

	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("finish run %s: run not found", runID)
	}

	return nil
}

// OutcomesForRun returns a run's outcomes in processing order.
func (r *RunRepo) OutcomesForRun(ctx context.Context, runID string) ([]model.AgencyOutcome, error) {
	const query = `
		SELECT id, run_id, agency, article_count, status, error, processed_at
		FROM agency_outcomes
		WHERE run_id = ?
		ORDER BY id
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes for run %s: %w", runID, err)
	}
	defer rows.Close()

	var outcomes []model.AgencyOutcome
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outcome for run %s: %w", runID, err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes for run %s: %w", runID, err)
	}

	return outcomes, nil
}

// GetRun retrieves a single run by ID. Returns nil, nil if it does not exist.
func (r *RunRepo) GetRun(ctx context.Context, runID string) (*model.SampleRun, error) {
	const query = `
		SELECT id, agency_file, started_at, finished_at, agencies_total, agencies_failed
		FROM runs
		WHERE id = ?
	`

	var (
		run      model.SampleRun
		finished sql.NullTime
	)
	err := r.db.Reader.QueryRowContext(ctx, query, runID).Scan(
		&run.ID, &run.AgencyFile, &run.StartedAt, &finished,
		&run.AgenciesTotal, &run.AgenciesFailed,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}

	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}

	return &run, nil
}

// scanOutcome maps one agency_outcomes row.
func scanOutcome(rows *sql.Rows) (model.AgencyOutcome, error) {
	var (
		o      model.AgencyOutcome
		status string
	)
	if err := rows.Scan(&o.ID, &o.RunID, &o.Agency, &o.ArticleCount, &status, &o.Error, &o.ProcessedAt); err != nil {
		return model.AgencyOutcome{}, err
	}
	o.Status = model.OutcomeStatus(status)
	return o, nil
}
