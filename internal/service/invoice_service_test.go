package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/port"
	"invoicegen/mocks"
)

func writeStubFile(path string) error {
	return os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644)
}

func billingConfig() config.BillingConfig {
	return config.BillingConfig{
		HomeState: "Karnataka",
		Template:  "invoice_template_long_service_description",
		Seller:    config.SellerConfig{GSTIN: "29AAAAA0000A1Z5", LegalName: "Example Services Ltd"},
	}
}

func acmeOrg() domain.Organization {
	return domain.Organization{
		ID: "org-1", Name: "Acme Bank", ApplicationName: "acme",
		GSTIN: "29AAACA1234A1Z5", PANNumber: "AAACA1234A",
		Street: "1 MG Road", Location: "Shivajinagar", City: "Bengaluru",
		PostalCode: "560001", State: "Karnataka", Country: "India", StateCode: "29",
	}
}

func deltaOrg() domain.Organization {
	return domain.Organization{
		ID: "org-2", Name: "Delta Finance", ApplicationName: "delta",
		GSTIN: "27AAACD5678B1Z3", State: "Maharashtra",
		Street: "5 Marine Drive", City: "Mumbai", PostalCode: "400001", Country: "India",
	}
}

func stubData(ds *mocks.MockDataSource, standard []port.StandardBillingRow, custom []port.CustomBillingRow) {
	ds.On("Organizations", mock.Anything).Return([]domain.Organization{acmeOrg(), deltaOrg()}, nil)
	ds.On("RateCard", mock.Anything).Return([]domain.RateCardEntry{
		{ProviderName: "Equitas", LenderAPIName: "PAN Verify", ProviderAPIName: "pan-verify-v2",
			PlanType: domain.PlanTypeFlat, MinHits: 0, MaxHits: 0, UnitPrice: 10.00},
	}, nil)
	ds.On("APIDetails", mock.Anything).Return([]port.APIDetailRow{
		{ProviderName: "Equitas", LenderAPIName: "PAN Verify", ProviderAPIName: "pan-verify-v2"},
	}, nil)
	ds.On("StandardBilling", mock.Anything).Return(standard, nil)
	ds.On("CustomBilling", mock.Anything).Return(custom, nil)
}

func TestGenerateMonthHappyPath(t *testing.T) {
	ds := new(mocks.MockDataSource)
	stubData(ds,
		[]port.StandardBillingRow{
			{Period: "January-2025", OrganizationName: "Acme Bank", SuccessfulHits: 100, FailedHits: 5,
				APIName: "PAN Verify", ProviderName: "Equitas", InvoiceNumber: "INV-001"},
		},
		[]port.CustomBillingRow{
			{Period: "January-2025", OrganizationName: "Delta Finance", APIName: "Sync Service",
				ProviderName: "Teal", SuccessfulHits: 0, FailedHits: 0, InvoiceNumber: "INV-002",
				AmountRaw: "15,000.00", UseAmountValue: true},
		})

	ledger := new(mocks.MockLedgerSource)
	ledger.On("LedgerEntries", mock.Anything, "January-2025").Return(map[string]domain.PaymentLedgerEntry{
		"Acme Bank": {Period: "January-2025", OrganizationName: "Acme Bank",
			PreviousBalance: 200, PaymentsReceived: 150, Adjustments: 50, PONumber: "PO-77"},
	}, nil)

	var acmeParams map[string]string
	renderer := new(mocks.MockInvoiceRenderer)
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			params := args.Get(2).(map[string]string)
			if params["txt_bill_name"] == "Acme Bank" {
				acmeParams = params
			}
		}).Return(nil)

	runs := new(mocks.MockRunRepository)
	runs.On("CreateRun", mock.Anything, mock.Anything).Return(nil)
	runs.On("AddOutcome", mock.Anything, mock.Anything).Return(nil)
	runs.On("FinishRun", mock.Anything, mock.Anything).Return(nil)

	email := new(mocks.MockEmailSender)
	email.On("SendRunReport", mock.Anything, mock.Anything).Return(nil)

	svc := NewInvoiceService(ds, ledger, renderer, nil, runs, email, billingConfig(), t.TempDir())

	invoiceDate := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	run, err := svc.GenerateMonth(context.Background(), "January-2025", invoiceDate)
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusCompleted, run.Status)
	require.Len(t, run.Outcomes, 2)
	assert.Equal(t, domain.OutcomeStatusGenerated, run.Outcomes[0].Status)
	assert.Equal(t, "acme_INVOICE_20250101_20250131_EQUITAS", run.Outcomes[0].ReportName)
	assert.Equal(t, domain.OutcomeStatusGenerated, run.Outcomes[1].Status)

	// 100 successful hits at 10.00: 1000 pre-tax, 90+90 GST, 1180 total,
	// then the ledger carry-forward nets to the same figure.
	require.NotNil(t, acmeParams)
	assert.Equal(t, "1,000", acmeParams["txt_taxable_value"])
	assert.Equal(t, "90", acmeParams["txt_sgst"])
	assert.Equal(t, "90", acmeParams["txt_cgst"])
	assert.Equal(t, "0", acmeParams["txt_igst"])
	assert.Equal(t, "1,180", acmeParams["txt_pmnt_due"])
	assert.Equal(t, "PO-77", acmeParams["txt_bill_po_number"])
	assert.Equal(t, "105", acmeParams["count_1"])

	runs.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestGenerateMonthUploadsBothArtifacts(t *testing.T) {
	ds := new(mocks.MockDataSource)
	stubData(ds,
		[]port.StandardBillingRow{
			{Period: "January-2025", OrganizationName: "Acme Bank", SuccessfulHits: 10,
				APIName: "PAN Verify", ProviderName: "Equitas", InvoiceNumber: "INV-001"},
		}, []port.CustomBillingRow{
			{Period: "December-2024", OrganizationName: "Delta Finance", APIName: "Sync Service",
				ProviderName: "Teal", InvoiceNumber: "INV-000", AmountRaw: "1.00", UseAmountValue: true},
		})

	ledger := new(mocks.MockLedgerSource)
	ledger.On("LedgerEntries", mock.Anything, "January-2025").
		Return(map[string]domain.PaymentLedgerEntry{}, nil)

	outputDir := t.TempDir()
	renderer := new(mocks.MockInvoiceRenderer)
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, writeStubFile(args.String(4)))
		}).Return(nil)

	var uploaded []string
	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			input := args.Get(1).(port.UploadInput)
			assert.Equal(t, "January-2025", input.Folder)
			uploaded = append(uploaded, input.FileName)
		}).
		Return(&port.UploadOutput{Location: "s3://bucket/x"}, nil)

	svc := NewInvoiceService(ds, ledger, renderer, storage, nil, nil, billingConfig(), outputDir)

	run, err := svc.GenerateMonth(context.Background(), "January-2025",
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Only the January row survives the period filter.
	require.Len(t, run.Outcomes, 1)
	assert.Equal(t, "s3://bucket/x", run.Outcomes[0].RemoteLocation)
	assert.ElementsMatch(t, []string{
		"acme_INVOICE_20250101_20250131_EQUITAS.pdf",
		"acme_INVOICE_20250101_20250131_EQUITAS.json",
	}, uploaded)
}

func TestGenerateMonthMalformedAmountIsolatesGroup(t *testing.T) {
	ds := new(mocks.MockDataSource)
	stubData(ds,
		[]port.StandardBillingRow{
			{Period: "January-2025", OrganizationName: "Acme Bank", SuccessfulHits: 10,
				APIName: "PAN Verify", ProviderName: "Equitas", InvoiceNumber: "INV-001"},
		},
		[]port.CustomBillingRow{
			{Period: "January-2025", OrganizationName: "Delta Finance", APIName: "Sync Service",
				ProviderName: "Teal", InvoiceNumber: "INV-002", AmountRaw: "not-a-number", UseAmountValue: true},
		})

	ledger := new(mocks.MockLedgerSource)
	ledger.On("LedgerEntries", mock.Anything, "January-2025").
		Return(map[string]domain.PaymentLedgerEntry{}, nil)

	renderer := new(mocks.MockInvoiceRenderer)
	renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewInvoiceService(ds, ledger, renderer, nil, nil, nil, billingConfig(), t.TempDir())

	run, err := svc.GenerateMonth(context.Background(), "January-2025",
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusPartial, run.Status)
	require.Len(t, run.Outcomes, 2)
	assert.Equal(t, domain.OutcomeStatusGenerated, run.Outcomes[0].Status)
	assert.Equal(t, domain.OutcomeStatusFailed, run.Outcomes[1].Status)
	assert.Equal(t, "Delta Finance", run.Outcomes[1].OrganizationName)
	assert.Contains(t, run.Outcomes[1].Detail, "cannot be parsed")
}

func TestGenerateMonthIngestionFailureIsFatal(t *testing.T) {
	ds := new(mocks.MockDataSource)
	ds.On("Organizations", mock.Anything).Return(nil, domain.ErrMissingData)

	svc := NewInvoiceService(ds, new(mocks.MockLedgerSource), new(mocks.MockInvoiceRenderer),
		nil, nil, nil, billingConfig(), t.TempDir())

	_, err := svc.GenerateMonth(context.Background(), "January-2025",
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingData)
}

func TestGenerateMonthRejectsBadPeriod(t *testing.T) {
	svc := NewInvoiceService(new(mocks.MockDataSource), new(mocks.MockLedgerSource),
		new(mocks.MockInvoiceRenderer), nil, nil, nil, billingConfig(), t.TempDir())

	_, err := svc.GenerateMonth(context.Background(), "Jan 2025", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = svc.GenerateMonth(context.Background(), "January-2025", time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceDate)
}
