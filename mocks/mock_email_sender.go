package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendRunReport(ctx context.Context, run *domain.InvoiceRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}
