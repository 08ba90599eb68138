package billing

import (
	"strings"

	"invoicegen/internal/domain"
)

// GST rates for the two-branch jurisdiction rule: intra-state supplies split
// SGST+CGST, everything else is IGST. No other jurisdictions are modeled.
const (
	sgstRate = 0.09
	cgstRate = 0.09
	igstRate = 0.18
)

// LatePaymentFee is the fixed disclosed penalty added to the "payable after
// due date" figure on every invoice. It is not a conditional charge.
const LatePaymentFee = 500

// ComputeTax applies the jurisdiction rule, the historical double-rounding
// order, and ledger carry-forward to one aggregated summary.
//
// Each tax component is rounded to two decimals, then independently
// half-up-rounded to a whole rupee, and the whole-rupee components are
// summed into TotalTax. Changing this order changes issued invoice totals,
// so it must be preserved bit for bit.
func ComputeTax(summary *domain.CombinedInvoiceSummary, ledger domain.PaymentLedgerEntry, homeState string) domain.TaxBreakdown {
	preTax := summary.TotalCost

	var tax domain.TaxBreakdown
	if strings.EqualFold(summary.Organization.State, homeState) {
		tax.SGST = preTax * sgstRate
		tax.CGST = preTax * cgstRate
	} else {
		tax.IGST = preTax * igstRate
	}

	tax.SGSTWhole = RoundHalfUpWhole(RoundHalfUp2(tax.SGST))
	tax.CGSTWhole = RoundHalfUpWhole(RoundHalfUp2(tax.CGST))
	tax.IGSTWhole = RoundHalfUpWhole(RoundHalfUp2(tax.IGST))
	tax.TotalTax = tax.SGSTWhole + tax.CGSTWhole + tax.IGSTWhole

	tax.TotalDue = preTax + float64(tax.TotalTax)
	tax.RoundedTotalDue = RoundHalfUpWhole(tax.TotalDue)

	tax.LateFee = LatePaymentFee
	tax.PaymentAfterDueDate = RoundHalfUpWhole(float64(tax.RoundedTotalDue) + LatePaymentFee)

	tax.PreviousBalance = ledger.PreviousBalance
	tax.PaymentsReceived = ledger.PaymentsReceived
	tax.Adjustments = ledger.Adjustments
	tax.AmountDue = ledger.PreviousBalance + float64(tax.RoundedTotalDue)
	tax.PaymentDue = RoundHalfUpWhole(
		ledger.PreviousBalance - ledger.PaymentsReceived - ledger.Adjustments + float64(tax.RoundedTotalDue))

	tax.AmountInWords = AmountInWords(float64(tax.RoundedTotalDue))
	return tax
}
