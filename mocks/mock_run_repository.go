package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockRunRepository is a mock implementation of port.RunRepository.
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) CreateRun(ctx context.Context, run *domain.InvoiceRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) FinishRun(ctx context.Context, run *domain.InvoiceRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) AddOutcome(ctx context.Context, outcome *domain.RunOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

func (m *MockRunRepository) GetRun(ctx context.Context, id uuid.UUID) (*domain.InvoiceRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceRun), args.Error(1)
}

func (m *MockRunRepository) ListRuns(ctx context.Context, limit int) ([]domain.InvoiceRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceRun), args.Error(1)
}
