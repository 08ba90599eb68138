package service

import (
	"context"
	"fmt"
	"sort"

	"invoicegen/internal/port"
)

// SyncLedger copies one period's carry-forward entries from a read-only
// source into a writable ledger store, replacing any existing rows for
// the same (period, organization). Entries are written in organization
// name order so a partial failure leaves a predictable prefix behind.
// Returns the number of entries written.
func SyncLedger(ctx context.Context, src port.LedgerSource, store port.LedgerStore, period string) (int, error) {
	entries, err := src.LedgerEntries(ctx, period)
	if err != nil {
		return 0, fmt.Errorf("loading ledger entries: %w", err)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		entry := entries[name]
		if err := store.UpsertEntry(ctx, &entry); err != nil {
			return i, fmt.Errorf("upserting ledger entry for %s: %w", name, err)
		}
	}
	return len(names), nil
}
