package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockLedgerStore is a mock implementation of port.LedgerStore.
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) LedgerEntries(ctx context.Context, period string) (map[string]domain.PaymentLedgerEntry, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PaymentLedgerEntry), args.Error(1)
}

func (m *MockLedgerStore) UpsertEntry(ctx context.Context, entry *domain.PaymentLedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
