package main

import (
	"fmt"
	"log"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/email/noop"
	"invoicegen/internal/email/ses"
	"invoicegen/internal/handler"
	"invoicegen/internal/ingest"
	"invoicegen/internal/port"
	"invoicegen/internal/render/pdf"
	"invoicegen/internal/repository/postgres"
	"invoicegen/internal/router"
	"invoicegen/internal/service"
	s3storage "invoicegen/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Data sources
	workbook := ingest.NewWorkbook(cfg.Workbook)
	var ledger port.LedgerSource = workbook
	if cfg.Billing.LedgerSource == domain.LedgerSourcePostgres {
		ledger = postgres.NewLedgerRepo(db)
	}
	runRepo := postgres.NewRunRepo(db)

	// Storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Email
	var sender port.EmailSender
	if cfg.Email.Provider == "ses" {
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ToAddress)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		sender = noop.NewNoopSender()
	}

	// Services
	invoiceSvc := service.NewInvoiceService(
		workbook, ledger, pdf.NewRenderer(), s3Client, runRepo, sender,
		cfg.Billing, cfg.Workbook.OutputDir,
	)

	// Handlers
	runH := handler.NewRunHandler(invoiceSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.Auth, runH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
