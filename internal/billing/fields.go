package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"invoicegen/internal/domain"
)

const (
	// invoiceDateFormat is the display format for every date on the invoice.
	invoiceDateFormat = "02-Jan-06"
	// periodLabelFormat parses "January-2025" style billing month labels.
	periodLabelFormat = "January-2006"
	// reportDateFormat is the compact date used in report identifiers.
	reportDateFormat = "20060102"

	// paymentDueDays is added to the invoice date to produce the due date.
	paymentDueDays = 15

	// SACCode is the services accounting code for IT services invoices.
	SACCode = "998319"
	// ServiceDescription appears verbatim on every invoice.
	ServiceDescription = "Other Information Technology Services"
)

// ParsePeriod parses a month-year label like "January-2025" into the first
// and last day of that calendar month.
func ParsePeriod(label string) (domain.BillingPeriod, error) {
	t, err := time.Parse(periodLabelFormat, label)
	if err != nil {
		return domain.BillingPeriod{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, label)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return domain.BillingPeriod{
		Label: label,
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}, nil
}

// ResolveFields assembles the display-ready field set for one invoice.
// Pure transformation: every field derives from its inputs alone.
func ResolveFields(
	summary *domain.CombinedInvoiceSummary,
	tax *domain.TaxBreakdown,
	ledger domain.PaymentLedgerEntry,
	invoiceDate time.Time,
	period domain.BillingPeriod,
) domain.FieldSet {
	org := &summary.Organization

	poNumber := ledger.PONumber
	if poNumber == "" {
		poNumber = "-"
	}

	return domain.FieldSet{
		BillName:    org.Name,
		BillAddress: org.Address(),
		BillGSTIN:   org.GSTIN,
		BillPAN:     org.PANNumber,
		PONumber:    poNumber,

		InvoiceNumber:  summary.InvoiceNumber,
		BillDate:       invoiceDate.Format(invoiceDateFormat),
		BillPeriod:     fmt.Sprintf("%s - %s", period.Start.Format(invoiceDateFormat), period.End.Format(invoiceDateFormat)),
		PaymentDueDate: invoiceDate.AddDate(0, 0, paymentDueDays).Format(invoiceDateFormat),

		TotalTransactions:      summary.TotalTransactions,
		SuccessfulTransactions: summary.SuccessfulTransactions,
		FailedTransactions:     summary.FailedTransactions,

		TaxableValue:              money(summary.TotalCost),
		SGST:                      money(float64(tax.SGSTWhole)),
		CGST:                      money(float64(tax.CGSTWhole)),
		IGST:                      money(float64(tax.IGSTWhole)),
		CreditLimit:               money(0),
		PreviousBalance:           money(ledger.PreviousBalance),
		PaymentsReceived:          money(ledger.PaymentsReceived),
		PaymentAdjustments:        money(ledger.Adjustments),
		CurrentPeriodCharges:      money(float64(tax.RoundedTotalDue)),
		PaymentDue:                money(float64(tax.PaymentDue)),
		TotalCurrentPeriodCharges: money(float64(tax.RoundedTotalDue)),
		LatePaymentFee:            money(float64(tax.LateFee)),
		PaymentAfterDueDate:       money(float64(tax.PaymentAfterDueDate)),
		AmountInWords:             tax.AmountInWords,

		GSTNumber:             org.GSTIN,
		SACCode:               SACCode,
		StateCode:             "No",
		LiableToReverseCharge: "No",
		ServiceDescription:    ServiceDescription,
		PlaceOfSupply:         org.State,
	}
}

func money(v float64) string {
	return StripWholeDecimals(FormatINR(v))
}

// ReportName derives the canonical report/file identifier:
// {application}_INVOICE_{start}_{end}_{PROVIDER}. It is the archival key, so
// it must stay unique per (organization, period, provider); collisions would
// silently overwrite a previously archived invoice.
func ReportName(summary *domain.CombinedInvoiceSummary, period domain.BillingPeriod) string {
	provider := ""
	if len(summary.LineItems) > 0 {
		provider = summary.LineItems[0].Provider
	}
	return fmt.Sprintf("%s_INVOICE_%s_%s_%s",
		summary.ApplicationName,
		period.Start.Format(reportDateFormat),
		period.End.Format(reportDateFormat),
		strings.ToUpper(provider))
}

// RendererParams flattens the field set and line items into the flat
// string-keyed mapping the report template consumes. This is the only place
// the open-ended key space survives; everything upstream is typed. Line item
// fields become 1-based suffixed keys (sr_no_1, service_name_1, ...).
func RendererParams(fields *domain.FieldSet, lineItems []domain.BillingLineItem) map[string]string {
	params := map[string]string{
		"txt_bill_name":                         fields.BillName,
		"txt_bill_address":                      fields.BillAddress,
		"txt_bill_gstn":                         fields.BillGSTIN,
		"txt_bill_pan":                          fields.BillPAN,
		"txt_bill_po_number":                    fields.PONumber,
		"txt_invoice_number":                    fields.InvoiceNumber,
		"txt_bill_date":                         fields.BillDate,
		"txt_bill_period":                       fields.BillPeriod,
		"txt_payment_due_date":                  fields.PaymentDueDate,
		"txt_total_transactions_count":          strconv.Itoa(fields.TotalTransactions),
		"txt_total_successful_transactions":     strconv.Itoa(fields.SuccessfulTransactions),
		"txt_total_failed_transactions":         strconv.Itoa(fields.FailedTransactions),
		"txt_taxable_value":                     fields.TaxableValue,
		"txt_sgst":                              fields.SGST,
		"txt_cgst":                              fields.CGST,
		"txt_igst":                              fields.IGST,
		"txt_credit_limit":                      fields.CreditLimit,
		"txt_prev_balance":                      fields.PreviousBalance,
		"txt_pmnt_received":                     fields.PaymentsReceived,
		"txt_pmnt_adj":                          fields.PaymentAdjustments,
		"txt_curr_period_charges":               fields.CurrentPeriodCharges,
		"txt_pmnt_due":                          fields.PaymentDue,
		"txt_total_curr_period_charges":         fields.TotalCurrentPeriodCharges,
		"txt_late_fee":                          fields.LatePaymentFee,
		"txt_pmnt_after_due_date":               fields.LatePaymentFee,
		"txt_pmnt_after_due_date_2":             fields.PaymentAfterDueDate,
		"txt_amount_words":                      fields.AmountInWords,
		"txt_gst_number":                        fields.GSTNumber,
		"txt_sac_no":                            fields.SACCode,
		"txt_state_code":                        fields.StateCode,
		"txt_liable_to_reverse_charge":          fields.LiableToReverseCharge,
		"txt_service_description":               fields.ServiceDescription,
		"txt_place_of_supply":                   fields.PlaceOfSupply,
	}

	for i := range lineItems {
		item := &lineItems[i]
		n := strconv.Itoa(i + 1)
		params["sr_no_"+n] = strconv.Itoa(item.SequenceNo)
		params["service_name_"+n] = item.ServiceName
		params["provider_"+n] = item.Provider
		params["unit_cost_"+n] = item.UnitCostDisplay
		params["count_"+n] = strconv.Itoa(item.Count)
		params["total_cost_"+n] = item.LineTotalDisplay
	}
	return params
}
