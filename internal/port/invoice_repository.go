package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentdesk/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence.
type InvoiceRepository interface {
	// CreateNext allocates the next correlative of inv.Series and inserts inv
	// in one transaction, filling inv.Correlative.
	CreateNext(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetByContractID(ctx context.Context, contractID uuid.UUID) (*domain.Invoice, error)
	ListByIssuedRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error
}
