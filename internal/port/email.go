package port

import (
	"context"

	"invoicegen/internal/domain"
)

// EmailSender delivers the end-of-run report: one line per organization,
// success or the specific failure reason.
type EmailSender interface {
	SendRunReport(ctx context.Context, run *domain.InvoiceRun) error
}
