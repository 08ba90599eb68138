// Package pdf renders the tax invoice document with gofpdf. The layout is
// a fixed A4 template; all values arrive pre-formatted in the parameter
// map, so this package does no monetary arithmetic.
package pdf

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type renderer struct{}

// NewRenderer creates the gofpdf invoice renderer.
func NewRenderer() port.InvoiceRenderer {
	return &renderer{}
}

// Render writes the invoice PDF to outputPath. The template name selects
// between the short and long service description footer.
func (r *renderer) Render(ctx context.Context, templateName string, params map[string]string, lineCount int, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 10)
	pdf.AddPage()

	p := func(key string) string { return params["txt_"+key] }

	// Header
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// Invoice metadata block
	pdf.SetFont("Arial", "", 10)
	kv := func(label, value string) {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(55, 5, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, value, "", 1, "L", false, 0, "")
	}

	kv("Invoice Number", p("invoice_number"))
	kv("Invoice Date", p("bill_date"))
	kv("Billing Period", p("bill_period"))
	kv("Payment Due Date", p("payment_due_date"))
	kv("PO Number", p("bill_po_number"))
	pdf.Ln(3)

	// Buyer block
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 5, "Billed To", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, p("bill_name"), "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 5, p("bill_address"), "", "L", false)
	kv("GSTIN", p("bill_gstn"))
	kv("PAN", p("bill_pan"))
	kv("Place of Supply", p("place_of_supply"))
	kv("State Code", p("state_code"))
	kv("Liable to Reverse Charge", p("liable_to_reverse_charge"))
	pdf.Ln(3)

	// Line items table
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(12, 6, "Sr", "1", 0, "C", false, 0, "")
	pdf.CellFormat(62, 6, "Service", "1", 0, "C", false, 0, "")
	pdf.CellFormat(38, 6, "Provider", "1", 0, "C", false, 0, "")
	pdf.CellFormat(24, 6, "Unit Cost", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, "Count", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i := 1; i <= lineCount; i++ {
		suffix := "_" + strconv.Itoa(i)
		pdf.CellFormat(12, 6, params["sr_no"+suffix], "1", 0, "C", false, 0, "")
		pdf.CellFormat(62, 6, params["service_name"+suffix], "1", 0, "L", false, 0, "")
		pdf.CellFormat(38, 6, params["provider"+suffix], "1", 0, "L", false, 0, "")
		pdf.CellFormat(24, 6, params["unit_cost"+suffix], "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, params["count"+suffix], "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, params["total_cost"+suffix], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(3)

	// Totals block
	amount := func(label, value string) {
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(120, 5, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(0, 5, value, "", 1, "R", false, 0, "")
	}
	amount("Taxable Value", p("taxable_value"))
	amount("SGST @ 9%", p("sgst"))
	amount("CGST @ 9%", p("cgst"))
	amount("IGST @ 18%", p("igst"))
	amount("Total Current Period Charges", p("total_curr_period_charges"))
	amount("Previous Balance", p("prev_balance"))
	amount("Payments Received", p("pmnt_received"))
	amount("Adjustments", p("pmnt_adj"))
	amount("Payment Due", p("pmnt_due"))
	amount("Late Payment Fee", p("late_fee"))
	amount("Payment After Due Date", p("pmnt_after_due_date_2"))
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 5, "Amount in Words", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, p("amount_words"), "", "L", false)
	pdf.Ln(3)

	// Statutory footer
	kv("SAC Code", p("sac_no"))
	kv("GSTIN", p("gst_number"))
	if templateName != "" {
		pdf.SetFont("Arial", "I", 8)
		pdf.MultiCell(0, 4, p("service_description"), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrRenderFailed, outputPath, err)
	}
	return nil
}
