package remote

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// CustomerClient talks to the customers service.
type CustomerClient struct {
	jsonClient
}

var _ port.CustomerSource = (*CustomerClient)(nil)

// NewCustomerClient creates a CustomerClient for the service at baseURL.
func NewCustomerClient(baseURL string, timeout time.Duration, log *zap.Logger) *CustomerClient {
	return &CustomerClient{jsonClient: newJSONClient("customers", baseURL, timeout, log)}
}

// CustomersByIDs returns the customers with the given IDs. No request is
// made for an empty ID set.
func (c *CustomerClient) CustomersByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Customer, error) {
	if len(ids) == 0 {
		return []domain.Customer{}, nil
	}
	var dtos []customerDTO
	if err := c.do(ctx, http.MethodPost, "/api/clientes/reportes/por-ids", ids, &dtos); err != nil {
		return nil, err
	}
	customers := make([]domain.Customer, 0, len(dtos))
	for i := range dtos {
		customers = append(customers, dtos[i].toDomain())
	}
	return customers, nil
}
