package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockContractSource is a mock implementation of port.ContractSource.
type MockContractSource struct {
	mock.Mock
}

func (m *MockContractSource) ContractsInRange(ctx context.Context, start, end time.Time) ([]domain.Contract, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

func (m *MockContractSource) GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

// MockInvoiceSource is a mock implementation of port.InvoiceSource.
type MockInvoiceSource struct {
	mock.Mock
}

func (m *MockInvoiceSource) InvoicesInRange(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// MockCustomerSource is a mock implementation of port.CustomerSource.
type MockCustomerSource struct {
	mock.Mock
}

func (m *MockCustomerSource) CustomersByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Customer, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// MockVehicleSource is a mock implementation of port.VehicleSource.
type MockVehicleSource struct {
	mock.Mock
}

func (m *MockVehicleSource) VehiclesForReporting(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

// MockCatalogInvalidator is a mock implementation of port.CatalogInvalidator.
type MockCatalogInvalidator struct {
	mock.Mock
}

func (m *MockCatalogInvalidator) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
