package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/port"
)

const vehicleCatalogKey = "rentdesk:vehicles:reporting"

// VehicleCatalog caches the reportable vehicle catalog in Redis. Cache
// failures fall through to the wrapped source; only source errors surface.
type VehicleCatalog struct {
	next   port.VehicleSource
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

var _ port.VehicleSource = (*VehicleCatalog)(nil)

// NewVehicleCatalog wraps next. A nil client disables caching.
func NewVehicleCatalog(next port.VehicleSource, client *redis.Client, ttl time.Duration, log *zap.Logger) *VehicleCatalog {
	return &VehicleCatalog{next: next, client: client, ttl: ttl, log: logger.OrNop(log)}
}

// VehiclesForReporting returns the cached catalog or loads and stores it.
func (c *VehicleCatalog) VehiclesForReporting(ctx context.Context) ([]domain.Vehicle, error) {
	if c.client == nil {
		return c.next.VehiclesForReporting(ctx)
	}

	payload, err := c.client.Get(ctx, vehicleCatalogKey).Bytes()
	switch {
	case err == nil:
		var vehicles []domain.Vehicle
		if jerr := json.Unmarshal(payload, &vehicles); jerr == nil {
			return vehicles, nil
		}
		c.log.Warn("discarding corrupt vehicle cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn("vehicle cache read failed", zap.Error(err))
	}

	vehicles, err := c.next.VehiclesForReporting(ctx)
	if err != nil {
		return nil, err
	}
	// Empty catalogs are not cached.
	if len(vehicles) == 0 {
		return vehicles, nil
	}
	raw, err := json.Marshal(vehicles)
	if err != nil {
		return vehicles, nil
	}
	if err := c.client.Set(ctx, vehicleCatalogKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("vehicle cache write failed", zap.Error(err))
	}
	return vehicles, nil
}

// Invalidate drops the cached catalog.
func (c *VehicleCatalog) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, vehicleCatalogKey).Err()
}
