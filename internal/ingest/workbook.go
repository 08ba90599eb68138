// Package ingest reads billing reference and transaction data from the
// monthly Excel workbook. One Workbook instance serves a single run; the
// file is opened lazily and reread per sheet request.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"invoicegen/internal/billing"
	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

// Workbook implements port.DataSource and port.LedgerSource on top of a
// local xlsx file. Sheet names come from configuration.
type Workbook struct {
	path   string
	sheets config.WorkbookConfig
}

// NewWorkbook creates a workbook data source for the given configuration.
func NewWorkbook(cfg config.WorkbookConfig) *Workbook {
	return &Workbook{path: cfg.Path, sheets: cfg}
}

// rows opens the workbook and returns the data rows of one sheet, header
// row removed. An empty sheet is domain.ErrMissingData: every sheet this
// pipeline reads is required.
func (w *Workbook) rows(sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s: %w", sheet, domain.ErrMissingData)
	}
	return rows[1:], nil
}

// Organizations reads the organization directory sheet.
// Columns: ID, Name, Legal Name, PAN, GSTIN, Street, Location, City,
// Postal Code, State, Country, State Code, Application Name.
func (w *Workbook) Organizations(_ context.Context) ([]domain.Organization, error) {
	rows, err := w.rows(w.sheets.OrganizationsSheet)
	if err != nil {
		return nil, err
	}

	orgs := make([]domain.Organization, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(cellVal(row, 0)) == "" {
			continue
		}
		orgs = append(orgs, domain.Organization{
			ID:              strings.TrimSpace(cellVal(row, 0)),
			Name:            strings.TrimSpace(cellVal(row, 1)),
			LegalName:       strings.TrimSpace(cellVal(row, 2)),
			PANNumber:       strings.TrimSpace(cellVal(row, 3)),
			GSTIN:           strings.TrimSpace(cellVal(row, 4)),
			Street:          strings.TrimSpace(cellVal(row, 5)),
			Location:        strings.TrimSpace(cellVal(row, 6)),
			City:            strings.TrimSpace(cellVal(row, 7)),
			PostalCode:      strings.TrimSpace(cellVal(row, 8)),
			State:           strings.TrimSpace(cellVal(row, 9)),
			Country:         strings.TrimSpace(cellVal(row, 10)),
			StateCode:       strings.TrimSpace(cellVal(row, 11)),
			ApplicationName: strings.TrimSpace(cellVal(row, 12)),
		})
	}
	if len(orgs) == 0 {
		return nil, fmt.Errorf("sheet %s: %w", w.sheets.OrganizationsSheet, domain.ErrMissingData)
	}
	return orgs, nil
}

// RateCard reads the tiered rate card sheet.
// Columns: Provider Name, Lender API Name, Provider API Name, Plan Type,
// Min Hits, Max Hits, Unit Price. Row order is preserved; resolution is
// first match.
func (w *Workbook) RateCard(_ context.Context) ([]domain.RateCardEntry, error) {
	rows, err := w.rows(w.sheets.RateCardSheet)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.RateCardEntry, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(cellVal(row, 0)) == "" {
			continue
		}
		minHits, err := parseIntCell(cellVal(row, 4))
		if err != nil {
			return nil, fmt.Errorf("rate card row %d min hits: %w", i+2, err)
		}
		maxHits, err := parseIntCell(cellVal(row, 5))
		if err != nil {
			return nil, fmt.Errorf("rate card row %d max hits: %w", i+2, err)
		}
		price, err := billing.ParseAmount(cellVal(row, 6))
		if err != nil {
			return nil, fmt.Errorf("rate card row %d unit price: %w", i+2, err)
		}
		entries = append(entries, domain.RateCardEntry{
			ProviderName:    strings.TrimSpace(cellVal(row, 0)),
			LenderAPIName:   strings.TrimSpace(cellVal(row, 1)),
			ProviderAPIName: strings.TrimSpace(cellVal(row, 2)),
			PlanType:        domain.PlanType(strings.ToLower(strings.TrimSpace(cellVal(row, 3)))),
			MinHits:         minHits,
			MaxHits:         maxHits,
			UnitPrice:       price,
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("sheet %s: %w", w.sheets.RateCardSheet, domain.ErrMissingData)
	}
	return entries, nil
}

// APIDetails reads the provider API name mapping sheet.
// Columns: Provider Name, Lender API Name, Provider API Name.
func (w *Workbook) APIDetails(_ context.Context) ([]port.APIDetailRow, error) {
	rows, err := w.rows(w.sheets.APIDetailsSheet)
	if err != nil {
		return nil, err
	}

	details := make([]port.APIDetailRow, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(cellVal(row, 0)) == "" {
			continue
		}
		details = append(details, port.APIDetailRow{
			ProviderName:    strings.TrimSpace(cellVal(row, 0)),
			LenderAPIName:   strings.TrimSpace(cellVal(row, 1)),
			ProviderAPIName: strings.TrimSpace(cellVal(row, 2)),
		})
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("sheet %s: %w", w.sheets.APIDetailsSheet, domain.ErrMissingData)
	}
	return details, nil
}

// StandardBilling reads the rate-card-priced transaction sheet.
// Columns: Month - Year, Organization, Successful Hits, Failed Hits,
// API Name, Provider Name, Invoice Number.
func (w *Workbook) StandardBilling(_ context.Context) ([]port.StandardBillingRow, error) {
	rows, err := w.rows(w.sheets.StandardSheet)
	if err != nil {
		return nil, err
	}

	out := make([]port.StandardBillingRow, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(cellVal(row, 0)) == "" {
			continue
		}
		succ, err := parseIntCell(cellVal(row, 2))
		if err != nil {
			return nil, fmt.Errorf("standard billing row %d successful hits: %w", i+2, err)
		}
		failed, err := parseIntCell(cellVal(row, 3))
		if err != nil {
			return nil, fmt.Errorf("standard billing row %d failed hits: %w", i+2, err)
		}
		out = append(out, port.StandardBillingRow{
			Period:           strings.TrimSpace(cellVal(row, 0)),
			OrganizationName: strings.TrimSpace(cellVal(row, 1)),
			SuccessfulHits:   succ,
			FailedHits:       failed,
			APIName:          strings.TrimSpace(cellVal(row, 4)),
			ProviderName:     strings.TrimSpace(cellVal(row, 5)),
			InvoiceNumber:    strings.TrimSpace(cellVal(row, 6)),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("sheet %s: %w", w.sheets.StandardSheet, domain.ErrMissingData)
	}
	return out, nil
}

// CustomBilling reads the self-priced transaction sheet.
// Columns: Month - Year, Organization, API Name, Provider Name,
// Document Type, Successful Hits, Failed Hits, Unit Cost, Invoice Number,
// Amount, Use Amount Value. Monetary cells stay raw strings here so a
// malformed value fails only its aggregation group later.
func (w *Workbook) CustomBilling(_ context.Context) ([]port.CustomBillingRow, error) {
	rows, err := w.rows(w.sheets.CustomSheet)
	if err != nil {
		return nil, err
	}

	out := make([]port.CustomBillingRow, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(cellVal(row, 0)) == "" {
			continue
		}
		succ, err := parseIntCell(cellVal(row, 5))
		if err != nil {
			return nil, fmt.Errorf("custom billing row %d successful hits: %w", i+2, err)
		}
		failed, err := parseIntCell(cellVal(row, 6))
		if err != nil {
			return nil, fmt.Errorf("custom billing row %d failed hits: %w", i+2, err)
		}
		out = append(out, port.CustomBillingRow{
			Period:           strings.TrimSpace(cellVal(row, 0)),
			OrganizationName: strings.TrimSpace(cellVal(row, 1)),
			APIName:          strings.TrimSpace(cellVal(row, 2)),
			ProviderName:     strings.TrimSpace(cellVal(row, 3)),
			DocumentType:     strings.TrimSpace(cellVal(row, 4)),
			SuccessfulHits:   succ,
			FailedHits:       failed,
			UnitCostRaw:      strings.TrimSpace(cellVal(row, 7)),
			InvoiceNumber:    strings.TrimSpace(cellVal(row, 8)),
			AmountRaw:        strings.TrimSpace(cellVal(row, 9)),
			UseAmountValue:   parseBoolCell(cellVal(row, 10)),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("sheet %s: %w", w.sheets.CustomSheet, domain.ErrMissingData)
	}
	return out, nil
}

// LedgerEntries reads the carry-forward sheet and returns the entries for
// one period, keyed by organization name.
// Columns: Month - Year, Organization, Previous Balance, Payments
// Received, Adjustments, PO Number.
func (w *Workbook) LedgerEntries(_ context.Context, period string) (map[string]domain.PaymentLedgerEntry, error) {
	rows, err := w.rows(w.sheets.LedgerSheet)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]domain.PaymentLedgerEntry)
	for i, row := range rows {
		if !strings.EqualFold(strings.TrimSpace(cellVal(row, 0)), period) {
			continue
		}
		prev, err := billing.ParseOptionalAmount(cellVal(row, 2))
		if err != nil {
			return nil, fmt.Errorf("ledger row %d previous balance: %w", i+2, err)
		}
		received, err := billing.ParseOptionalAmount(cellVal(row, 3))
		if err != nil {
			return nil, fmt.Errorf("ledger row %d payments received: %w", i+2, err)
		}
		adjustments, err := billing.ParseOptionalAmount(cellVal(row, 4))
		if err != nil {
			return nil, fmt.Errorf("ledger row %d adjustments: %w", i+2, err)
		}
		name := strings.TrimSpace(cellVal(row, 1))
		entries[name] = domain.PaymentLedgerEntry{
			Period:           period,
			OrganizationName: name,
			PreviousBalance:  prev,
			PaymentsReceived: received,
			Adjustments:      adjustments,
			PONumber:         strings.TrimSpace(cellVal(row, 5)),
		}
	}
	return entries, nil
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// parseIntCell reads a count cell. Blank counts are zero; thousands
// separators are tolerated.
func parseIntCell(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse count %q: %w", s, err)
	}
	return n, nil
}

// parseBoolCell reads a yes/no style cell. Anything other than an
// affirmative value is false.
func parseBoolCell(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
