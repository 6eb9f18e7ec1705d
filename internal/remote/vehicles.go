package remote

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

// VehicleClient talks to the vehicles service.
type VehicleClient struct {
	jsonClient
}

var _ port.VehicleSource = (*VehicleClient)(nil)

// NewVehicleClient creates a VehicleClient for the service at baseURL.
func NewVehicleClient(baseURL string, timeout time.Duration, log *zap.Logger) *VehicleClient {
	return &VehicleClient{jsonClient: newJSONClient("vehicles", baseURL, timeout, log)}
}

// VehiclesForReporting returns the full reportable catalog.
func (c *VehicleClient) VehiclesForReporting(ctx context.Context) ([]domain.Vehicle, error) {
	var dtos []vehicleDTO
	if err := c.do(ctx, http.MethodGet, "/api/vehiculos/para-reportes", nil, &dtos); err != nil {
		return nil, err
	}
	vehicles := make([]domain.Vehicle, 0, len(dtos))
	for i := range dtos {
		vehicles = append(vehicles, dtos[i].toDomain())
	}
	return vehicles, nil
}
