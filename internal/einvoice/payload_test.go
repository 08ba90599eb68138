package einvoice

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
)

func testInvoice() *domain.ResolvedInvoice {
	return &domain.ResolvedInvoice{
		Fields: domain.FieldSet{
			InvoiceNumber:             "INV-001",
			BillDate:                  "31-Jan-25",
			BillName:                  "Acme Bank",
			BillAddress:               "1 MG Road, Shivajinagar, Bengaluru, 560001, Karnataka, India",
			GSTNumber:                 "29AAACA1234A1Z5",
			TaxableValue:              "1,000",
			SGST:                      "90",
			CGST:                      "90",
			IGST:                      "0",
			TotalCurrentPeriodCharges: "1,180",
		},
		Tax: domain.TaxBreakdown{
			SGST: 90.0,
			CGST: 90.0,
			IGST: 0,
		},
		ReportName: "acme_INVOICE_20250101_20250131_EQUITAS",
	}
}

func testSeller() config.SellerConfig {
	return config.SellerConfig{
		GSTIN:     "29AAAAA0000A1Z5",
		LegalName: "Example Services Ltd",
		Address1:  "4th Floor, Tower B",
		Address2:  "Outer Ring Road",
		Location:  "Bengaluru",
		PINCode:   560102,
		StateCode: "29",
		Phone:     "9900000000",
		Email:     "billing@example.in",
	}
}

func TestBuildPayload(t *testing.T) {
	p := Build(testSeller(), testInvoice())

	assert.Equal(t, "1.1", p.Version)
	assert.Equal(t, "GST", p.TranDtls.TaxSch)
	assert.Equal(t, "B2B", p.TranDtls.SupTyp)
	assert.Equal(t, "N", p.TranDtls.RegRev)
	assert.Nil(t, p.TranDtls.EcmGstin)

	assert.Equal(t, "INV", p.DocDtls.Typ)
	assert.Equal(t, "INV-001", p.DocDtls.No)
	assert.Equal(t, "31-Jan-25", p.DocDtls.Dt)

	assert.Equal(t, "29AAAAA0000A1Z5", p.SellerDtls.Gstin)
	assert.Equal(t, 560102, p.SellerDtls.Pin)

	assert.Equal(t, "29AAACA1234A1Z5", p.BuyerDtls.Gstin)
	assert.Equal(t, "Acme Bank", p.BuyerDtls.LglNm)

	assert.Equal(t, "1,000", p.ValDtls.AssVal)
	assert.Equal(t, "90", p.ValDtls.SgstVal)
	assert.Equal(t, "1,000", p.ValDtls.TotInvVal)

	assert.Equal(t, "NICGEPP2.0", p.RefDtls.InvRm)

	require.Len(t, p.ItemList, 1)
	item := p.ItemList[0]
	assert.Equal(t, "998319", item.HsnCd)
	assert.Equal(t, "Y", item.IsServc)
	assert.Equal(t, 18, item.GstRt)
	assert.Equal(t, 90.0, item.SgstAmt)
	assert.Equal(t, 90.0, item.CgstAmt)
	assert.Equal(t, 0.0, item.IgstAmt)
	assert.Equal(t, "1,180", item.TotItemVal)
}

func TestWriteFile(t *testing.T) {
	inv := testInvoice()
	p := Build(testSeller(), inv)

	dir := t.TempDir()
	path, err := WriteFile(dir, inv.ReportName, p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "acme_INVOICE_20250101_20250131_EQUITAS.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "1.1", decoded["Version"])

	// EcmGstin serializes as an explicit null, matching the portal sample.
	tran := decoded["TranDtls"].(map[string]any)
	v, present := tran["EcmGstin"]
	assert.True(t, present)
	assert.Nil(t, v)
}
