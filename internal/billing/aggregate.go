package billing

import (
	"fmt"
	"log"

	"invoicegen/internal/domain"
)

// Options control how the aggregator treats the two historically silent
// fallbacks: unmatched rate card entries and unknown organizations.
type Options struct {
	// StrictRates fails a group instead of pricing it at zero when no rate
	// card entry matches.
	StrictRates bool
	// StrictOrgs aborts the run instead of dropping records whose
	// organization has no directory entry.
	StrictOrgs bool
}

type groupKey struct {
	orgID         string
	invoiceNumber string
	period        string
}

// Aggregate folds raw transaction records into one CombinedInvoiceSummary
// per (organization, invoice number, period) group. Records are processed in
// input order and line item sequence numbers are positional, so callers must
// not reorder the input.
//
// A malformed monetary value fails only its own group; the failure is
// reported so the run can surface it per organization. The aggregation map
// is local to this call: no state survives between invocations.
func Aggregate(
	records []domain.RawTransactionRecord,
	orgs map[string]domain.Organization,
	rateTable []domain.RateCardEntry,
	opts Options,
) ([]domain.CombinedInvoiceSummary, []domain.GroupFailure, error) {
	groups := make(map[groupKey]*domain.CombinedInvoiceSummary)
	failed := make(map[groupKey]*domain.GroupFailure)
	var order []groupKey

	for i := range records {
		rec := &records[i]

		org, ok := orgs[rec.ApplicationName]
		if !ok {
			if opts.StrictOrgs {
				return nil, nil, fmt.Errorf("%w: %q (invoice %s)",
					domain.ErrUnknownOrganization, rec.OrganizationName, rec.InvoiceNumber)
			}
			log.Printf("aggregate: dropping record for unknown organization %q (invoice %s)",
				rec.OrganizationName, rec.InvoiceNumber)
			continue
		}

		key := groupKey{orgID: org.ID, invoiceNumber: rec.InvoiceNumber, period: rec.Period}
		if _, bad := failed[key]; bad {
			continue
		}

		summary, exists := groups[key]
		if !exists {
			summary = &domain.CombinedInvoiceSummary{
				Organization:    org,
				ApplicationName: rec.ApplicationName,
				InvoiceNumber:   rec.InvoiceNumber,
				Period:          rec.Period,
			}
			groups[key] = summary
			order = append(order, key)
		}

		lineTotal, unitDisplay, err := priceRecord(rec, rateTable, opts)
		if err != nil {
			failed[key] = &domain.GroupFailure{
				OrganizationName: org.Name,
				InvoiceNumber:    rec.InvoiceNumber,
				Err:              err,
			}
			delete(groups, key)
			continue
		}

		summary.LineItems = append(summary.LineItems, domain.BillingLineItem{
			SequenceNo:       len(summary.LineItems) + 1,
			ServiceName:      rec.LenderAPIName,
			Provider:         rec.ProviderName,
			UnitCostDisplay:  unitDisplay,
			Count:            rec.TotalCount(),
			LineTotalDisplay: FormatINR(lineTotal),
		})
		summary.TotalTransactions += rec.TotalCount()
		summary.SuccessfulTransactions += rec.SuccessfulCount
		summary.FailedTransactions += rec.FailedCount
		summary.TotalCost += lineTotal
	}

	summaries := make([]domain.CombinedInvoiceSummary, 0, len(groups))
	var failures []domain.GroupFailure
	for _, key := range order {
		if f, bad := failed[key]; bad {
			failures = append(failures, *f)
			continue
		}
		summaries = append(summaries, *groups[key])
	}
	return summaries, failures, nil
}

// priceRecord resolves one record's contribution to the pre-tax total.
// The two pricing modes are mutually exclusive per record: a fixed amount
// bypasses unit-cost multiplication entirely, otherwise the contribution is
// successful hits times the unit price (failed hits are never costed).
func priceRecord(rec *domain.RawTransactionRecord, rateTable []domain.RateCardEntry, opts Options) (float64, string, error) {
	if rec.UseAmountValue {
		amount, err := ParseAmount(rec.AmountRaw)
		if err != nil {
			return 0, "", fmt.Errorf("fixed amount for %s: %w", rec.LenderAPIName, err)
		}
		return amount, "-", nil
	}

	var unitCost float64
	if rec.CustomPricing {
		v, err := ParseAmount(rec.UnitCostRaw)
		if err != nil {
			return 0, "", fmt.Errorf("unit cost for %s: %w", rec.LenderAPIName, err)
		}
		unitCost = v
	} else if opts.StrictRates {
		v, err := ResolveUnitPriceStrict(rec.SuccessfulCount, rec.ProviderAPIName, rateTable)
		if err != nil {
			return 0, "", err
		}
		unitCost = v
	} else {
		unitCost = ResolveUnitPrice(rec.SuccessfulCount, rec.ProviderAPIName, rateTable)
	}

	return float64(rec.SuccessfulCount) * unitCost, fmt.Sprintf("%.2f", unitCost), nil
}
