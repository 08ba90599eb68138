package noop

import (
	"context"
	"log"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs the run summary to
// stdout. Used in development and when no report address is configured.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendRunReport(_ context.Context, run *domain.InvoiceRun) error {
	log.Printf("[NOOP EMAIL] Run %s (%s) finished with status %s: %d outcomes",
		run.ID, run.Period, run.Status, len(run.Outcomes))
	for i := range run.Outcomes {
		o := &run.Outcomes[i]
		if o.Status == domain.OutcomeStatusGenerated {
			log.Printf("[NOOP EMAIL]   %s: generated %s", o.OrganizationName, o.ReportName)
		} else {
			log.Printf("[NOOP EMAIL]   %s: failed: %s", o.OrganizationName, o.Detail)
		}
	}
	return nil
}
