package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a PostgreSQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

func (r *runRepo) CreateRun(ctx context.Context, run *domain.InvoiceRun) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO invoice_runs (id, period, invoice_date, status, started_at, finished_at)
		 VALUES (:id, :period, :invoice_date, :status, :started_at, :finished_at)`, run)
	if err != nil {
		return fmt.Errorf("insert invoice run: %w", err)
	}
	return nil
}

func (r *runRepo) FinishRun(ctx context.Context, run *domain.InvoiceRun) error {
	_, err := r.db.NamedExecContext(ctx,
		`UPDATE invoice_runs
		 SET status = :status, finished_at = :finished_at
		 WHERE id = :id`, run)
	if err != nil {
		return fmt.Errorf("update invoice run: %w", err)
	}
	return nil
}

func (r *runRepo) AddOutcome(ctx context.Context, outcome *domain.RunOutcome) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO invoice_run_outcomes
		   (id, run_id, organization_name, invoice_number, report_name, status, detail, remote_location, created_at)
		 VALUES
		   (:id, :run_id, :organization_name, :invoice_number, :report_name, :status, :detail, :remote_location, :created_at)`,
		outcome)
	if err != nil {
		return fmt.Errorf("insert run outcome: %w", err)
	}
	return nil
}

func (r *runRepo) GetRun(ctx context.Context, id uuid.UUID) (*domain.InvoiceRun, error) {
	var run domain.InvoiceRun
	err := r.db.GetContext(ctx, &run,
		`SELECT id, period, invoice_date, status, started_at, finished_at
		 FROM invoice_runs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select invoice run: %w", err)
	}

	err = r.db.SelectContext(ctx, &run.Outcomes,
		`SELECT id, run_id, organization_name, invoice_number, report_name, status, detail, remote_location, created_at
		 FROM invoice_run_outcomes
		 WHERE run_id = $1
		 ORDER BY created_at, organization_name`, id)
	if err != nil {
		return nil, fmt.Errorf("select run outcomes: %w", err)
	}
	return &run, nil
}

func (r *runRepo) ListRuns(ctx context.Context, limit int) ([]domain.InvoiceRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []domain.InvoiceRun
	err := r.db.SelectContext(ctx, &runs,
		`SELECT id, period, invoice_date, status, started_at, finished_at
		 FROM invoice_runs
		 ORDER BY started_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list invoice runs: %w", err)
	}
	return runs, nil
}
