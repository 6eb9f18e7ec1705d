package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rentdesk/internal/domain"
	"rentdesk/internal/validator"
)

func (s *reportService) VehicleUsage(ctx context.Context, start, end time.Time) ([]domain.VehicleUsageRow, error) {
	rows, found, err := s.buildVehicleUsage(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if found {
		s.record(vehicleUsageRun(start, end, len(rows)), domain.FormatJSON, nil)
	}
	return rows, nil
}

func (s *reportService) VehicleUsageSummary(ctx context.Context, start, end time.Time) (*domain.VehicleUsageSummary, error) {
	rows, err := s.VehicleUsage(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return summarizeUsage(rows, start, end), nil
}

func (s *reportService) ExportVehicleUsage(ctx context.Context, start, end time.Time, format domain.ReportFormat) (*domain.ReportFile, error) {
	rows, _, err := s.buildVehicleUsage(ctx, start, end)
	if err != nil {
		return nil, err
	}
	run := vehicleUsageRun(start, end, len(rows))
	return s.export(ctx, run, format, s.vehicleUsageTable(rows, start, end))
}

func vehicleUsageRun(start, end time.Time, count int) reportRun {
	return reportRun{
		reportType: domain.ReportVehicleUsage,
		baseName:   rangeBaseName("reporte-uso-vehiculos", start, end),
		params:     rangeParams(start, end, "Vehículos", count),
	}
}

// plateUsage accumulates the line items of one plate.
type plateUsage struct {
	days    int
	revenue decimal.Decimal
	items   map[uuid.UUID]struct{}
}

// buildVehicleUsage reports every catalog vehicle. found is false when either
// the contracts or the catalog came back empty.
func (s *reportService) buildVehicleUsage(ctx context.Context, start, end time.Time) ([]domain.VehicleUsageRow, bool, error) {
	if err := s.validator.Validate(start, end, validator.RequireNonEmpty()); err != nil {
		return nil, false, err
	}

	var (
		contracts []domain.Contract
		vehicles  []domain.Vehicle
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contracts, err = s.contracts.ContractsInRange(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		vehicles, err = s.vehicles.VehiclesForReporting(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, s.fail(domain.ReportVehicleUsage, err)
	}

	if len(contracts) == 0 || len(vehicles) == 0 {
		s.log.Info("vehicle usage has no data",
			zap.Int("contracts", len(contracts)),
			zap.Int("vehicles", len(vehicles)),
		)
		return []domain.VehicleUsageRow{}, false, nil
	}

	usage := make(map[string]*plateUsage)
	lastRental := make(map[string]time.Time)
	for i := range contracts {
		c := &contracts[i]
		for j := range c.LineItems {
			li := &c.LineItems[j]
			if li.Plate == nil || strings.TrimSpace(*li.Plate) == "" {
				continue
			}
			plate := domain.NormalizePlate(*li.Plate)
			u, ok := usage[plate]
			if !ok {
				u = &plateUsage{items: make(map[uuid.UUID]struct{})}
				usage[plate] = u
			}
			u.days += li.RentalDays
			u.revenue = u.revenue.Add(li.Subtotal)
			if li.ID != nil {
				u.items[*li.ID] = struct{}{}
			}
			if c.EndDate != nil && c.EndDate.After(lastRental[plate]) {
				lastRental[plate] = *c.EndDate
			}
		}
	}

	periodDays := validator.InclusiveDays(start, end)
	rows := make([]domain.VehicleUsageRow, 0, len(vehicles))
	catalogued := make(map[string]bool, len(vehicles))
	for i := range vehicles {
		v := &vehicles[i]
		if v.Plate == nil || strings.TrimSpace(*v.Plate) == "" {
			s.log.Warn("skipping vehicle without plate", zap.String("vehicle_id", v.ID.String()))
			continue
		}
		plate := domain.NormalizePlate(*v.Plate)
		catalogued[plate] = true
		row := domain.VehicleUsageRow{
			Plate:       plate,
			Brand:       v.Brand,
			Model:       v.Model,
			VehicleType: v.Type,
			Revenue:     decimal.Zero,
		}
		if u, ok := usage[plate]; ok {
			row.RentedDays = u.days
			row.ContractCount = len(u.items)
			row.Revenue = u.revenue
			row.UsagePercent = usagePercent(u.days, periodDays)
			if last, ok := lastRental[plate]; ok {
				row.LastRental = &last
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.GreaterThan(rows[j].Revenue)
	})

	s.dropStaleCatalog(ctx, usage, catalogued)

	s.log.Info("vehicle usage report built", zap.Int("rows", len(rows)))
	return rows, true, nil
}

// dropStaleCatalog invalidates the cached catalog when rented plates are
// missing from it, so vehicles added upstream show up on the next request.
func (s *reportService) dropStaleCatalog(ctx context.Context, usage map[string]*plateUsage, catalogued map[string]bool) {
	if s.catalog == nil {
		return
	}
	missing := 0
	for plate := range usage {
		if !catalogued[plate] {
			missing++
		}
	}
	if missing == 0 {
		return
	}
	s.log.Info("rented plates missing from vehicle catalog", zap.Int("plates", missing))
	if err := s.catalog.Invalidate(ctx); err != nil {
		s.log.Warn("vehicle catalog invalidation failed", zap.Error(err))
	}
}

// usagePercent is days over the period length, as a percentage in [0, 100].
func usagePercent(days, periodDays int) float64 {
	if periodDays <= 0 {
		return 0
	}
	pct := float64(days) / float64(periodDays) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

func summarizeUsage(rows []domain.VehicleUsageRow, start, end time.Time) *domain.VehicleUsageSummary {
	sum := &domain.VehicleUsageSummary{
		Period:        fmt.Sprintf("%s a %s", start.Format(isoDate), end.Format(isoDate)),
		TotalVehicles: len(rows),
		TotalRevenue:  decimal.Zero,
	}
	for i := range rows {
		r := &rows[i]
		if r.ContractCount > 0 {
			sum.VehiclesWithUse++
		}
		sum.TotalRevenue = sum.TotalRevenue.Add(r.Revenue)
		sum.TotalRentedDays += r.RentedDays
		sum.TotalContracts += r.ContractCount
		if sum.MostProfitable == nil || r.Revenue.GreaterThan(sum.MostProfitable.Revenue) {
			best := *r
			sum.MostProfitable = &best
		}
	}
	sum.VehiclesWithoutUse = sum.TotalVehicles - sum.VehiclesWithUse
	if sum.TotalVehicles > 0 {
		sum.AvgContracts = float64(sum.TotalContracts) / float64(sum.TotalVehicles)
	}
	return sum
}
