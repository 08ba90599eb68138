// Package einvoice builds the NIC e-invoice registration payload for each
// generated invoice. The payload shape follows schema version 1.1; field
// names are fixed by the portal and must not be renamed.
package einvoice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
)

const (
	payloadVersion = "1.1"
	invoiceType    = "INV"
	supplyType     = "B2B"
	sacCode        = "998319"
)

// Payload is the top-level NIC e-invoice document.
type Payload struct {
	Version    string     `json:"Version"`
	TranDtls   TranDtls   `json:"TranDtls"`
	DocDtls    DocDtls    `json:"DocDtls"`
	SellerDtls SellerDtls `json:"SellerDtls"`
	BuyerDtls  BuyerDtls  `json:"BuyerDtls"`
	ValDtls    ValDtls    `json:"ValDtls"`
	RefDtls    RefDtls    `json:"RefDtls"`
	ItemList   []Item     `json:"ItemList"`
}

type TranDtls struct {
	TaxSch      string  `json:"TaxSch"`
	SupTyp      string  `json:"SupTyp"`
	IgstOnIntra string  `json:"IgstOnIntra"`
	RegRev      string  `json:"RegRev"`
	EcmGstin    *string `json:"EcmGstin"`
}

type DocDtls struct {
	Typ string `json:"Typ"`
	No  string `json:"No"`
	Dt  string `json:"Dt"`
}

type SellerDtls struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	Addr1 string `json:"Addr1"`
	Addr2 string `json:"Addr2"`
	Loc   string `json:"Loc"`
	Pin   int    `json:"Pin"`
	Stcd  string `json:"Stcd"`
	Ph    string `json:"Ph"`
	Em    string `json:"Em"`
}

type BuyerDtls struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	Addr1 string `json:"Addr1"`
	Addr2 string `json:"Addr2"`
	Loc   string `json:"Loc"`
	Pin   string `json:"Pin"`
	Pos   string `json:"Pos"`
	Stcd  string `json:"Stcd"`
	Ph    string `json:"Ph"`
	Em    string `json:"Em"`
}

// ValDtls carries display-formatted amounts. The portal accepts the
// grouped string form; keep it identical to the rendered invoice.
type ValDtls struct {
	AssVal    string `json:"AssVal"`
	IgstVal   string `json:"IgstVal"`
	CgstVal   string `json:"CgstVal"`
	SgstVal   string `json:"SgstVal"`
	CesVal    int    `json:"CesVal"`
	StCesVal  int    `json:"StCesVal"`
	Discount  int    `json:"Discount"`
	OthChrg   int    `json:"OthChrg"`
	RndOffAmt int    `json:"RndOffAmt"`
	TotInvVal string `json:"TotInvVal"`
}

type RefDtls struct {
	InvRm string `json:"InvRm"`
}

type Item struct {
	SlNo               string  `json:"SlNo"`
	PrdDesc            string  `json:"PrdDesc"`
	IsServc            string  `json:"IsServc"`
	HsnCd              string  `json:"HsnCd"`
	Qty                int     `json:"Qty"`
	FreeQty            int     `json:"FreeQty"`
	Unit               string  `json:"Unit"`
	UnitPrice          string  `json:"UnitPrice"`
	TotAmt             string  `json:"TotAmt"`
	Discount           int     `json:"Discount"`
	PreTaxVal          int     `json:"PreTaxVal"`
	AssAmt             string  `json:"AssAmt"`
	GstRt              int     `json:"GstRt"`
	IgstAmt            float64 `json:"IgstAmt"`
	CgstAmt            float64 `json:"CgstAmt"`
	SgstAmt            float64 `json:"SgstAmt"`
	CesRt              int     `json:"CesRt"`
	CesAmt             int     `json:"CesAmt"`
	CesNonAdvlAmt      int     `json:"CesNonAdvlAmt"`
	StateCesRt         int     `json:"StateCesRt"`
	StateCesAmt        int     `json:"StateCesAmt"`
	StateCesNonAdvlAmt int     `json:"StateCesNonAdvlAmt"`
	OthChrg            int     `json:"OthChrg"`
	TotItemVal         string  `json:"TotItemVal"`
}

// Build assembles the registration payload for one resolved invoice.
// Seller identity comes from configuration; buyer and value details come
// from the already-resolved invoice field set, so the payload always
// matches the rendered document.
func Build(seller config.SellerConfig, inv *domain.ResolvedInvoice) *Payload {
	fields := &inv.Fields
	return &Payload{
		Version: payloadVersion,
		TranDtls: TranDtls{
			TaxSch:      "GST",
			SupTyp:      supplyType,
			IgstOnIntra: "N",
			RegRev:      "N",
		},
		DocDtls: DocDtls{
			Typ: invoiceType,
			No:  fields.InvoiceNumber,
			Dt:  fields.BillDate,
		},
		SellerDtls: SellerDtls{
			Gstin: seller.GSTIN,
			LglNm: seller.LegalName,
			Addr1: seller.Address1,
			Addr2: seller.Address2,
			Loc:   seller.Location,
			Pin:   seller.PINCode,
			Stcd:  seller.StateCode,
			Ph:    seller.Phone,
			Em:    seller.Email,
		},
		BuyerDtls: BuyerDtls{
			Gstin: fields.GSTNumber,
			LglNm: fields.BillName,
			Addr1: fields.BillAddress,
		},
		ValDtls: ValDtls{
			AssVal:    fields.TaxableValue,
			IgstVal:   fields.IGST,
			CgstVal:   fields.CGST,
			SgstVal:   fields.SGST,
			TotInvVal: fields.TaxableValue,
		},
		RefDtls: RefDtls{InvRm: "NICGEPP2.0"},
		ItemList: []Item{
			{
				SlNo:       "1",
				PrdDesc:    "Other Information Technology",
				IsServc:    "Y",
				HsnCd:      sacCode,
				Qty:        1,
				Unit:       "UNT",
				UnitPrice:  fields.TaxableValue,
				TotAmt:     fields.TaxableValue,
				AssAmt:     fields.TaxableValue,
				GstRt:      18,
				IgstAmt:    inv.Tax.IGST,
				CgstAmt:    inv.Tax.CGST,
				SgstAmt:    inv.Tax.SGST,
				TotItemVal: fields.TotalCurrentPeriodCharges,
			},
		},
	}
}

// WriteFile serializes the payload as {reportName}.json under dir and
// returns the written path.
func WriteFile(dir string, reportName string, payload *Payload) (string, error) {
	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal e-invoice payload: %w", err)
	}

	path := filepath.Join(dir, reportName+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write e-invoice payload: %w", err)
	}
	return path, nil
}
