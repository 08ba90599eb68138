package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Organization is one partner organization from the directory sheet.
// Immutable reference data loaded once per run.
type Organization struct {
	ID              string
	Name            string
	LegalName       string
	PANNumber       string
	GSTIN           string
	Street          string
	Location        string
	City            string
	PostalCode      string
	State           string
	Country         string
	StateCode       string
	ApplicationName string
}

// Address returns the single-line postal address used on the invoice.
func (o *Organization) Address() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		o.Street, o.Location, o.City, o.PostalCode, o.State, o.Country)
}

// PlanType selects how a rate card entry prices usage.
type PlanType string

const (
	PlanTypeFlat PlanType = "flat"
	PlanTypeSlab PlanType = "slab"
)

// RateCardEntry is one row of the tiered rate card. Entries for the same
// provider API may overlap; resolution is first-match in table order.
type RateCardEntry struct {
	ProviderName    string
	LenderAPIName   string
	ProviderAPIName string
	PlanType        PlanType
	MinHits         int
	MaxHits         int // 0 = unbounded
	UnitPrice       float64
}

// RawTransactionRecord is one ingested transaction row for a single
// provider/API/organization/period combination. Monetary cells stay raw
// strings until aggregation so a malformed value fails only its own group.
type RawTransactionRecord struct {
	OrganizationName string
	ApplicationName  string
	ProviderAPIName  string
	LenderAPIName    string
	ProviderName     string
	Period           string
	SuccessfulCount  int
	FailedCount      int
	UnitCostRaw      string
	AmountRaw        string
	UseAmountValue   bool
	CustomPricing    bool // unit cost supplied on the row instead of the rate card
	InvoiceNumber    string
}

// TotalCount returns successful plus failed hits.
func (r *RawTransactionRecord) TotalCount() int {
	return r.SuccessfulCount + r.FailedCount
}

// BillingLineItem is one row of the invoice billing breakdown. Sequence
// numbers are positional (input order), 1-based within a summary.
type BillingLineItem struct {
	SequenceNo       int
	ServiceName      string
	Provider         string
	UnitCostDisplay  string // "-" when a fixed amount was billed
	Count            int
	LineTotalDisplay string
}

// CombinedInvoiceSummary aggregates all records for one
// (organization, invoice number, period) group.
type CombinedInvoiceSummary struct {
	Organization    Organization
	ApplicationName string
	InvoiceNumber   string
	Period          string

	TotalTransactions      int
	SuccessfulTransactions int
	FailedTransactions     int

	LineItems []BillingLineItem
	TotalCost float64 // pre-tax
}

// GroupFailure records an aggregation group that could not be billed.
// Other groups in the same run are unaffected.
type GroupFailure struct {
	OrganizationName string
	InvoiceNumber    string
	Err              error
}

// PaymentLedgerEntry is the carry-forward state for one (period, organization).
type PaymentLedgerEntry struct {
	Period           string  `db:"period"`
	OrganizationName string  `db:"organization_name"`
	PreviousBalance  float64 `db:"previous_balance"`
	PaymentsReceived float64 `db:"payments_received"`
	Adjustments      float64 `db:"adjustments"`
	PONumber         string  `db:"po_number"`
}

// EmptyLedgerEntry returns the zero-balance entry used when no ledger row
// exists for the organization.
func EmptyLedgerEntry(period, orgName string) PaymentLedgerEntry {
	return PaymentLedgerEntry{Period: period, OrganizationName: orgName, PONumber: "-"}
}

// TaxBreakdown holds every computed monetary figure for one invoice.
// AmountDue and PaymentDue follow different formulas on purpose; both are
// surfaced on the rendered invoice.
type TaxBreakdown struct {
	SGST float64
	CGST float64
	IGST float64

	// Whole-rupee components after the double rounding step; TotalTax is
	// their sum, not a rounding of SGST+CGST+IGST.
	SGSTWhole int64
	CGSTWhole int64
	IGSTWhole int64

	TotalTax        int64
	TotalDue        float64
	RoundedTotalDue int64

	LateFee             int64
	PaymentAfterDueDate int64

	PreviousBalance  float64
	PaymentsReceived float64
	Adjustments      float64
	AmountDue        float64 // previous balance + rounded total due
	PaymentDue       int64   // prev - received - adjustments + rounded total due

	AmountInWords string
}

// BillingPeriod is one calendar month used as the aggregation window.
type BillingPeriod struct {
	Label string // e.g. "January-2025"
	Start time.Time
	End   time.Time
}

// FieldSet is the fully resolved, display-ready field set handed to the
// renderer. Every monetary field is already formatted (en-IN grouping,
// trailing ".00" stripped).
type FieldSet struct {
	BillName    string
	BillAddress string
	BillGSTIN   string
	BillPAN     string
	PONumber    string

	InvoiceNumber  string
	BillDate       string
	BillPeriod     string
	PaymentDueDate string

	TotalTransactions      int
	SuccessfulTransactions int
	FailedTransactions     int

	TaxableValue              string
	SGST                      string
	CGST                      string
	IGST                      string
	CreditLimit               string
	PreviousBalance           string
	PaymentsReceived          string
	PaymentAdjustments        string
	CurrentPeriodCharges      string
	PaymentDue                string
	TotalCurrentPeriodCharges string
	LatePaymentFee            string
	PaymentAfterDueDate       string
	AmountInWords             string

	GSTNumber             string
	SACCode               string
	StateCode             string
	LiableToReverseCharge string
	ServiceDescription    string
	PlaceOfSupply         string
}

// ResolvedInvoice is the terminal entity of one organization's billing run:
// computed once, never mutated, handed to the renderer and archiver.
type ResolvedInvoice struct {
	Summary    CombinedInvoiceSummary
	Ledger     PaymentLedgerEntry
	Tax        TaxBreakdown
	Fields     FieldSet
	ReportName string
}

// InvoiceRun is one invocation of the monthly pipeline.
type InvoiceRun struct {
	ID          uuid.UUID `db:"id"`
	Period      string    `db:"period"`
	InvoiceDate time.Time `db:"invoice_date"`
	Status      RunStatus `db:"status"`
	StartedAt   time.Time `db:"started_at"`
	FinishedAt  time.Time `db:"finished_at"`

	Outcomes []RunOutcome `db:"-"`
}

// RunOutcome is the per-organization result of a run: either the generated
// report identifiers or the specific reason the invoice failed.
type RunOutcome struct {
	ID               uuid.UUID     `db:"id"`
	RunID            uuid.UUID     `db:"run_id"`
	OrganizationName string        `db:"organization_name"`
	InvoiceNumber    string        `db:"invoice_number"`
	ReportName       string        `db:"report_name"`
	Status           OutcomeStatus `db:"status"`
	Detail           string        `db:"detail"`
	RemoteLocation   string        `db:"remote_location"`
	CreatedAt        time.Time     `db:"created_at"`
}
