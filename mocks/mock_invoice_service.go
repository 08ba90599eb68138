package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GenerateMonth(ctx context.Context, periodLabel string, invoiceDate time.Time) (*domain.InvoiceRun, error) {
	args := m.Called(ctx, periodLabel, invoiceDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceRun), args.Error(1)
}

func (m *MockInvoiceService) GetRun(ctx context.Context, id uuid.UUID) (*domain.InvoiceRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceRun), args.Error(1)
}

func (m *MockInvoiceService) ListRuns(ctx context.Context, limit int) ([]domain.InvoiceRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceRun), args.Error(1)
}
