package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

// MockDataSource is a mock implementation of port.DataSource.
type MockDataSource struct {
	mock.Mock
}

func (m *MockDataSource) Organizations(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockDataSource) RateCard(ctx context.Context) ([]domain.RateCardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateCardEntry), args.Error(1)
}

func (m *MockDataSource) APIDetails(ctx context.Context) ([]port.APIDetailRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.APIDetailRow), args.Error(1)
}

func (m *MockDataSource) StandardBilling(ctx context.Context) ([]port.StandardBillingRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.StandardBillingRow), args.Error(1)
}

func (m *MockDataSource) CustomBilling(ctx context.Context) ([]port.CustomBillingRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.CustomBillingRow), args.Error(1)
}
