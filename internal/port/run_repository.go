package port

import (
	"context"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
)

// RunRepository persists invoice runs and their per-organization outcomes
// for audit. The computation core never reads from it.
type RunRepository interface {
	CreateRun(ctx context.Context, run *domain.InvoiceRun) error
	FinishRun(ctx context.Context, run *domain.InvoiceRun) error
	AddOutcome(ctx context.Context, outcome *domain.RunOutcome) error
	GetRun(ctx context.Context, id uuid.UUID) (*domain.InvoiceRun, error)
	ListRuns(ctx context.Context, limit int) ([]domain.InvoiceRun, error)
}
