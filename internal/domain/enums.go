package domain

// RunStatus is the overall state of an invoice run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed" // every organization billed
	RunStatusPartial   RunStatus = "partial"   // at least one organization failed
	RunStatusFailed    RunStatus = "failed"    // nothing billed
)

// OutcomeStatus is the per-organization result within a run.
type OutcomeStatus string

const (
	OutcomeStatusGenerated OutcomeStatus = "generated"
	OutcomeStatusFailed    OutcomeStatus = "failed"
)

// LedgerSource selects where payment carry-forward rows come from.
type LedgerSource string

const (
	LedgerSourceWorkbook LedgerSource = "workbook"
	LedgerSourcePostgres LedgerSource = "postgres"
)
