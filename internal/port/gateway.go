package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentdesk/internal/domain"
)

// ContractSource serves contract snapshots owned by the contracts service.
type ContractSource interface {
	ContractsInRange(ctx context.Context, start, end time.Time) ([]domain.Contract, error)
	GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
}

// InvoiceSource serves invoices issued within a date range.
type InvoiceSource interface {
	InvoicesInRange(ctx context.Context, start, end time.Time) ([]domain.Invoice, error)
}

// CustomerSource serves customer snapshots by ID.
type CustomerSource interface {
	CustomersByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Customer, error)
}

// VehicleSource serves the reportable vehicle catalog.
type VehicleSource interface {
	VehiclesForReporting(ctx context.Context) ([]domain.Vehicle, error)
}

// CatalogInvalidator drops a cached vehicle catalog so the next read goes
// to the vehicles service.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}
