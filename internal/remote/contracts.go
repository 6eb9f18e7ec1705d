package remote

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// ContractClient talks to the contracts service, which also owns the
// invoices issued for its contracts.
type ContractClient struct {
	jsonClient
}

var (
	_ port.ContractSource = (*ContractClient)(nil)
	_ port.InvoiceSource  = (*ContractClient)(nil)
)

// NewContractClient creates a ContractClient for the service at baseURL.
func NewContractClient(baseURL string, timeout time.Duration, log *zap.Logger) *ContractClient {
	return &ContractClient{jsonClient: newJSONClient("contracts", baseURL, timeout, log)}
}

// ContractsInRange returns the contracts whose rental falls within [start, end].
func (c *ContractClient) ContractsInRange(ctx context.Context, start, end time.Time) ([]domain.Contract, error) {
	var dtos []contractDTO
	if err := c.do(ctx, http.MethodPost, "/api/contratos/rango-fechas", newRangeRequest(start, end), &dtos); err != nil {
		return nil, err
	}
	contracts := make([]domain.Contract, 0, len(dtos))
	for i := range dtos {
		contracts = append(contracts, dtos[i].toDomain())
	}
	return contracts, nil
}

// GetContract returns one contract. A 404 answer maps to ErrContractNotFound.
func (c *ContractClient) GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	var dto contractDTO
	if err := c.do(ctx, http.MethodGet, "/api/contratos/"+id.String(), nil, &dto); err != nil {
		var rerr *domain.RemoteError
		if errors.As(err, &rerr) && rerr.Status == http.StatusNotFound {
			return nil, domain.ErrContractNotFound
		}
		return nil, err
	}
	if dto.ID == uuid.Nil {
		return nil, domain.ErrContractNotFound
	}
	contract := dto.toDomain()
	return &contract, nil
}

// InvoicesInRange returns the invoices issued within [start, end].
func (c *ContractClient) InvoicesInRange(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	var dtos []invoiceDTO
	if err := c.do(ctx, http.MethodPost, "/api/comprobantes/rango-fechas", newRangeRequest(start, end), &dtos); err != nil {
		return nil, err
	}
	invoices := make([]domain.Invoice, 0, len(dtos))
	for i := range dtos {
		invoices = append(invoices, dtos[i].toDomain())
	}
	return invoices, nil
}
