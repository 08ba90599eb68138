// Command seedledger copies one period's payment carry-forward rows from
// the workbook sheet into the payment_ledger table, for deployments that
// serve the ledger from PostgreSQL.
// Usage: go run ./cmd/seedledger <Month-Year>
// Example: go run ./cmd/seedledger January-2025
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"invoicegen/internal/billing"
	"invoicegen/internal/config"
	"invoicegen/internal/ingest"
	"invoicegen/internal/repository/postgres"
	"invoicegen/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: seedledger <Month-Year>")
		fmt.Println("Example: seedledger January-2025")
		os.Exit(1)
	}
	period, err := billing.ParsePeriod(os.Args[1])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	workbook := ingest.NewWorkbook(cfg.Workbook)
	n, err := service.SyncLedger(context.Background(), workbook, postgres.NewLedgerRepo(db), period.Label)
	if err != nil {
		return err
	}

	log.Printf("Synced %d ledger entries for %s", n, period.Label)
	return nil
}
