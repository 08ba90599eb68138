// Command generate runs one billing cycle from the command line without
// the HTTP server or database.
// Usage: go run ./cmd/generate <Month-Year> <dd-mm-yyyy>
// Example: go run ./cmd/generate January-2025 31-01-2025
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/email/noop"
	"invoicegen/internal/ingest"
	"invoicegen/internal/port"
	"invoicegen/internal/render/pdf"
	"invoicegen/internal/service"
	s3storage "invoicegen/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 3 {
		fmt.Println("Usage: generate <Month-Year> <dd-mm-yyyy>")
		fmt.Println("Example: generate January-2025 31-01-2025")
		os.Exit(1)
	}
	periodLabel := os.Args[1]

	invoiceDate, err := time.Parse("02-01-2006", os.Args[2])
	if err != nil {
		return fmt.Errorf("invoice date must look like 31-01-2025: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	workbook := ingest.NewWorkbook(cfg.Workbook)

	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	svc := service.NewInvoiceService(
		workbook, workbook, pdf.NewRenderer(), storage, nil, noop.NewNoopSender(),
		cfg.Billing, cfg.Workbook.OutputDir,
	)

	runResult, err := svc.GenerateMonth(context.Background(), periodLabel, invoiceDate)
	if err != nil {
		return err
	}

	log.Printf("Run %s finished: %s", runResult.ID, runResult.Status)
	for i := range runResult.Outcomes {
		o := &runResult.Outcomes[i]
		if o.Status == domain.OutcomeStatusGenerated {
			log.Printf("  %s: %s", o.OrganizationName, o.ReportName)
		} else {
			log.Printf("  %s: FAILED: %s", o.OrganizationName, o.Detail)
		}
	}
	if runResult.Status == domain.RunStatusFailed {
		os.Exit(1)
	}
	return nil
}
