package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Generate(ctx context.Context, contractID uuid.UUID, invoiceType domain.InvoiceType) (*domain.Invoice, error) {
	return invoice(m.Called(ctx, contractID, invoiceType))
}

func (m *MockInvoiceService) Void(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return invoice(m.Called(ctx, id))
}

func (m *MockInvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return invoice(m.Called(ctx, id))
}

func (m *MockInvoiceService) GetByContract(ctx context.Context, contractID uuid.UUID) (*domain.Invoice, error) {
	return invoice(m.Called(ctx, contractID))
}

func (m *MockInvoiceService) InvoicesInRange(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
