package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoicegen/internal/billing"
	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/einvoice"
	"invoicegen/internal/port"
)

// InvoiceService runs the monthly billing pipeline: ingest, aggregate,
// tax computation, rendering, and archival.
type InvoiceService interface {
	GenerateMonth(ctx context.Context, periodLabel string, invoiceDate time.Time) (*domain.InvoiceRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*domain.InvoiceRun, error)
	ListRuns(ctx context.Context, limit int) ([]domain.InvoiceRun, error)
}

type invoiceService struct {
	data     port.DataSource
	ledger   port.LedgerSource
	renderer port.InvoiceRenderer
	storage  port.ObjectStorage
	runs     port.RunRepository
	email    port.EmailSender

	billingCfg config.BillingConfig
	outputDir  string
}

// NewInvoiceService creates the billing pipeline service. The run
// repository and email sender may be nil; persistence and reporting are
// then skipped.
func NewInvoiceService(
	data port.DataSource,
	ledger port.LedgerSource,
	renderer port.InvoiceRenderer,
	storage port.ObjectStorage,
	runs port.RunRepository,
	email port.EmailSender,
	billingCfg config.BillingConfig,
	outputDir string,
) InvoiceService {
	return &invoiceService{
		data:       data,
		ledger:     ledger,
		renderer:   renderer,
		storage:    storage,
		runs:       runs,
		email:      email,
		billingCfg: billingCfg,
		outputDir:  outputDir,
	}
}

// GenerateMonth executes one full billing run for the given period.
// Ingestion failures abort the run; per-organization failures after
// aggregation are isolated and recorded as failed outcomes.
func (s *invoiceService) GenerateMonth(ctx context.Context, periodLabel string, invoiceDate time.Time) (*domain.InvoiceRun, error) {
	period, err := billing.ParsePeriod(periodLabel)
	if err != nil {
		return nil, err
	}
	if invoiceDate.IsZero() {
		return nil, domain.ErrInvalidInvoiceDate
	}

	records, orgsByApp, rateTable, err := s.assembleRecords(ctx, period)
	if err != nil {
		return nil, err
	}

	ledgerEntries, err := s.ledger.LedgerEntries(ctx, period.Label)
	if err != nil {
		return nil, fmt.Errorf("loading payment ledger: %w", err)
	}

	opts := billing.Options{
		StrictRates: s.billingCfg.StrictRates,
		StrictOrgs:  s.billingCfg.StrictOrgs,
	}
	summaries, groupFailures, err := billing.Aggregate(records, orgsByApp, rateTable, opts)
	if err != nil {
		return nil, err
	}

	run := &domain.InvoiceRun{
		ID:          uuid.New(),
		Period:      period.Label,
		InvoiceDate: invoiceDate,
		Status:      domain.RunStatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	if s.runs != nil {
		if err := s.runs.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("recording run: %w", err)
		}
	}

	generated := 0
	for i := range summaries {
		summary := &summaries[i]
		outcome := s.generateOne(ctx, run, summary, ledgerEntries, invoiceDate, period)
		if outcome.Status == domain.OutcomeStatusGenerated {
			generated++
		}
		run.Outcomes = append(run.Outcomes, *outcome)
	}

	for i := range groupFailures {
		f := &groupFailures[i]
		run.Outcomes = append(run.Outcomes, domain.RunOutcome{
			ID:               uuid.New(),
			RunID:            run.ID,
			OrganizationName: f.OrganizationName,
			InvoiceNumber:    f.InvoiceNumber,
			Status:           domain.OutcomeStatusFailed,
			Detail:           f.Err.Error(),
			CreatedAt:        time.Now().UTC(),
		})
	}

	run.Status = runStatus(generated, len(run.Outcomes))
	run.FinishedAt = time.Now().UTC()

	if s.runs != nil {
		for i := range run.Outcomes {
			if err := s.runs.AddOutcome(ctx, &run.Outcomes[i]); err != nil {
				log.Printf("recording outcome for %s: %v", run.Outcomes[i].OrganizationName, err)
			}
		}
		if err := s.runs.FinishRun(ctx, run); err != nil {
			log.Printf("finalizing run %s: %v", run.ID, err)
		}
	}
	if s.email != nil {
		if err := s.email.SendRunReport(ctx, run); err != nil {
			log.Printf("sending run report for %s: %v", run.ID, err)
		}
	}
	return run, nil
}

func (s *invoiceService) GetRun(ctx context.Context, id uuid.UUID) (*domain.InvoiceRun, error) {
	if s.runs == nil {
		return nil, domain.ErrRunNotFound
	}
	return s.runs.GetRun(ctx, id)
}

func (s *invoiceService) ListRuns(ctx context.Context, limit int) ([]domain.InvoiceRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.ListRuns(ctx, limit)
}

// assembleRecords loads every ingest sheet and converts the period's rows
// into raw transaction records. Any empty sheet or unreadable row aborts
// the run.
func (s *invoiceService) assembleRecords(ctx context.Context, period domain.BillingPeriod) ([]domain.RawTransactionRecord, map[string]domain.Organization, []domain.RateCardEntry, error) {
	orgs, err := s.data.Organizations(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading organizations: %w", err)
	}
	rateTable, err := s.data.RateCard(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading rate card: %w", err)
	}
	apiDetails, err := s.data.APIDetails(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading API details: %w", err)
	}
	standard, err := s.data.StandardBilling(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading standard billing: %w", err)
	}
	custom, err := s.data.CustomBilling(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading custom billing: %w", err)
	}

	orgsByName := make(map[string]domain.Organization, len(orgs))
	orgsByApp := make(map[string]domain.Organization, len(orgs))
	for _, org := range orgs {
		orgsByName[org.Name] = org
		orgsByApp[org.ApplicationName] = org
	}

	providerAPI := make(map[string]string, len(apiDetails))
	for _, d := range apiDetails {
		providerAPI[apiKey(d.ProviderName, d.LenderAPIName)] = d.ProviderAPIName
	}

	appName := func(orgName string) string {
		if org, ok := orgsByName[orgName]; ok {
			return org.ApplicationName
		}
		return ""
	}

	var records []domain.RawTransactionRecord
	for _, row := range standard {
		if !strings.EqualFold(row.Period, period.Label) {
			continue
		}
		records = append(records, domain.RawTransactionRecord{
			OrganizationName: row.OrganizationName,
			ApplicationName:  appName(row.OrganizationName),
			ProviderAPIName:  providerAPI[apiKey(row.ProviderName, row.APIName)],
			LenderAPIName:    row.APIName,
			ProviderName:     row.ProviderName,
			Period:           row.Period,
			SuccessfulCount:  row.SuccessfulHits,
			FailedCount:      row.FailedHits,
			InvoiceNumber:    row.InvoiceNumber,
		})
	}
	for _, row := range custom {
		if !strings.EqualFold(row.Period, period.Label) {
			continue
		}
		records = append(records, domain.RawTransactionRecord{
			OrganizationName: row.OrganizationName,
			ApplicationName:  appName(row.OrganizationName),
			ProviderAPIName:  providerAPI[apiKey(row.ProviderName, row.APIName)],
			LenderAPIName:    row.APIName,
			ProviderName:     row.ProviderName,
			Period:           row.Period,
			SuccessfulCount:  row.SuccessfulHits,
			FailedCount:      row.FailedHits,
			UnitCostRaw:      row.UnitCostRaw,
			AmountRaw:        row.AmountRaw,
			UseAmountValue:   row.UseAmountValue,
			CustomPricing:    !row.UseAmountValue,
			InvoiceNumber:    row.InvoiceNumber,
		})
	}
	return records, orgsByApp, rateTable, nil
}

// generateOne renders, exports, and archives a single organization's
// invoice. Failures are captured in the returned outcome, never
// propagated: one organization's failure must not stop the others.
func (s *invoiceService) generateOne(
	ctx context.Context,
	run *domain.InvoiceRun,
	summary *domain.CombinedInvoiceSummary,
	ledgerEntries map[string]domain.PaymentLedgerEntry,
	invoiceDate time.Time,
	period domain.BillingPeriod,
) *domain.RunOutcome {
	outcome := &domain.RunOutcome{
		ID:               uuid.New(),
		RunID:            run.ID,
		OrganizationName: summary.Organization.Name,
		InvoiceNumber:    summary.InvoiceNumber,
		CreatedAt:        time.Now().UTC(),
	}

	fail := func(err error) *domain.RunOutcome {
		log.Printf("invoice for %s (%s): %v", summary.Organization.Name, summary.InvoiceNumber, err)
		outcome.Status = domain.OutcomeStatusFailed
		outcome.Detail = err.Error()
		return outcome
	}

	ledgerEntry, ok := ledgerEntries[summary.Organization.Name]
	if !ok {
		ledgerEntry = domain.EmptyLedgerEntry(period.Label, summary.Organization.Name)
	}

	tax := billing.ComputeTax(summary, ledgerEntry, s.billingCfg.HomeState)
	fields := billing.ResolveFields(summary, &tax, ledgerEntry, invoiceDate, period)
	reportName := billing.ReportName(summary, period)
	outcome.ReportName = reportName

	inv := &domain.ResolvedInvoice{
		Summary:    *summary,
		Ledger:     ledgerEntry,
		Tax:        tax,
		Fields:     fields,
		ReportName: reportName,
	}

	pdfPath := filepath.Join(s.outputDir, reportName+".pdf")
	params := billing.RendererParams(&inv.Fields, summary.LineItems)
	if err := s.renderer.Render(ctx, s.billingCfg.Template, params, len(summary.LineItems), pdfPath); err != nil {
		return fail(err)
	}

	payload := einvoice.Build(s.billingCfg.Seller, inv)
	jsonPath, err := einvoice.WriteFile(s.outputDir, reportName, payload)
	if err != nil {
		return fail(err)
	}

	location, err := s.archive(ctx, period.Label, pdfPath, "application/pdf")
	if err != nil {
		return fail(err)
	}
	if _, err := s.archive(ctx, period.Label, jsonPath, "application/json"); err != nil {
		return fail(err)
	}

	outcome.Status = domain.OutcomeStatusGenerated
	outcome.RemoteLocation = location
	return outcome
}

// archive uploads one local file under the period folder and returns its
// remote location.
func (s *invoiceService) archive(ctx context.Context, folder, localPath, contentType string) (string, error) {
	if s.storage == nil {
		return "", nil
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer func() { _ = f.Close() }()

	out, err := s.storage.Upload(ctx, port.UploadInput{
		Folder:      folder,
		FileName:    filepath.Base(localPath),
		Body:        f,
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return out.Location, nil
}

func runStatus(generated, total int) domain.RunStatus {
	switch {
	case total == 0:
		return domain.RunStatusCompleted
	case generated == 0:
		return domain.RunStatusFailed
	case generated < total:
		return domain.RunStatusPartial
	default:
		return domain.RunStatusCompleted
	}
}

func apiKey(provider, lenderAPI string) string {
	return provider + "|" + lenderAPI
}
