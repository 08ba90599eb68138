package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockInvoiceRenderer is a mock implementation of port.InvoiceRenderer.
type MockInvoiceRenderer struct {
	mock.Mock
}

func (m *MockInvoiceRenderer) Render(ctx context.Context, templateName string, params map[string]string, lineCount int, outputPath string) error {
	args := m.Called(ctx, templateName, params, lineCount, outputPath)
	return args.Error(0)
}
