package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockLedgerSource is a mock implementation of port.LedgerSource.
type MockLedgerSource struct {
	mock.Mock
}

func (m *MockLedgerSource) LedgerEntries(ctx context.Context, period string) (map[string]domain.PaymentLedgerEntry, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PaymentLedgerEntry), args.Error(1)
}
