package port

import (
	"context"

	"invoicegen/internal/domain"
)

// APIDetailRow links a provider's public API name to the internal provider
// API identifier used by the rate card.
type APIDetailRow struct {
	ProviderName    string
	LenderAPIName   string
	ProviderAPIName string
}

// StandardBillingRow is one row of the standard transaction sheet, priced
// from the rate card.
type StandardBillingRow struct {
	Period           string
	OrganizationName string
	SuccessfulHits   int
	FailedHits       int
	APIName          string
	ProviderName     string
	InvoiceNumber    string
}

// CustomBillingRow is one row of the custom billing sheet. It carries its
// own unit cost and, optionally, a fixed total amount that overrides
// unit-cost pricing entirely.
type CustomBillingRow struct {
	Period           string
	OrganizationName string
	APIName          string
	ProviderName     string
	DocumentType     string
	SuccessfulHits   int
	FailedHits       int
	UnitCostRaw      string
	InvoiceNumber    string
	AmountRaw        string
	UseAmountValue   bool
}

// DataSource supplies the read-only row sets one billing run consumes.
// An empty row set is domain.ErrMissingData: ingestion failures are fatal
// to the whole run, never partially recovered.
type DataSource interface {
	Organizations(ctx context.Context) ([]domain.Organization, error)
	RateCard(ctx context.Context) ([]domain.RateCardEntry, error)
	APIDetails(ctx context.Context) ([]APIDetailRow, error)
	StandardBilling(ctx context.Context) ([]StandardBillingRow, error)
	CustomBilling(ctx context.Context) ([]CustomBillingRow, error)
}

// LedgerSource supplies carry-forward entries for one billing period,
// keyed by organization name. Both the workbook and the payment_ledger
// table implement it.
type LedgerSource interface {
	LedgerEntries(ctx context.Context, period string) (map[string]domain.PaymentLedgerEntry, error)
}

// LedgerStore is a writable ledger backend. The payment_ledger table
// implements it; the workbook sheet stays read-only.
type LedgerStore interface {
	LedgerSource
	UpsertEntry(ctx context.Context, entry *domain.PaymentLedgerEntry) error
}
