package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type ledgerRepo struct {
	db *sqlx.DB
}

// NewLedgerRepo creates a PostgreSQL-backed LedgerStore. It serves the
// same carry-forward entries as the workbook sheet for deployments that
// have migrated the ledger into the database, and accepts writes so the
// workbook can be synced into it.
func NewLedgerRepo(db *sqlx.DB) port.LedgerStore {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) LedgerEntries(ctx context.Context, period string) (map[string]domain.PaymentLedgerEntry, error) {
	var rows []domain.PaymentLedgerEntry
	err := r.db.SelectContext(ctx, &rows,
		`SELECT period, organization_name, previous_balance, payments_received, adjustments, po_number
		 FROM payment_ledger
		 WHERE period = $1
		 ORDER BY organization_name`, period)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]domain.PaymentLedgerEntry, len(rows))
	for _, row := range rows {
		entries[row.OrganizationName] = row
	}
	return entries, nil
}

// UpsertEntry writes one carry-forward row, replacing any existing entry
// for the same (period, organization).
func (r *ledgerRepo) UpsertEntry(ctx context.Context, entry *domain.PaymentLedgerEntry) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO payment_ledger (period, organization_name, previous_balance, payments_received, adjustments, po_number)
		 VALUES (:period, :organization_name, :previous_balance, :payments_received, :adjustments, :po_number)
		 ON CONFLICT (period, organization_name) DO UPDATE SET
		   previous_balance = EXCLUDED.previous_balance,
		   payments_received = EXCLUDED.payments_received,
		   adjustments = EXCLUDED.adjustments,
		   po_number = EXCLUDED.po_number`, entry)
	return err
}
