package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rentdesk/internal/domain"
)

func (s *reportService) MonthlyRevenue(ctx context.Context, year int) ([]domain.RevenueRow, error) {
	rows, err := s.buildMonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}
	s.record(monthlyRevenueRun(year, len(rows)), domain.FormatJSON, nil)
	return rows, nil
}

func (s *reportService) ExportMonthlyRevenue(ctx context.Context, year int, format domain.ReportFormat) (*domain.ReportFile, error) {
	rows, err := s.buildMonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}
	run := monthlyRevenueRun(year, len(rows))
	title := fmt.Sprintf("Reporte de Ingresos Mensuales - Año %d", year)
	return s.export(ctx, run, format, s.revenueTable(rows, title, "Ingresos Mensuales"))
}

func (s *reportService) RangeRevenue(ctx context.Context, start, end time.Time) ([]domain.RevenueRow, error) {
	rows, found, err := s.buildRangeRevenue(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if found {
		s.record(rangeRevenueRun(start, end, rows), domain.FormatJSON, nil)
	}
	return rows, nil
}

func (s *reportService) ExportRangeRevenue(ctx context.Context, start, end time.Time, format domain.ReportFormat) (*domain.ReportFile, error) {
	rows, _, err := s.buildRangeRevenue(ctx, start, end)
	if err != nil {
		return nil, err
	}
	run := rangeRevenueRun(start, end, rows)
	title := fmt.Sprintf("Reporte de Ingresos - %s a %s", start.Format(isoDate), end.Format(isoDate))
	return s.export(ctx, run, format, s.revenueTable(rows, title, "Ingresos"))
}

func monthlyRevenueRun(year, months int) reportRun {
	return reportRun{
		reportType: domain.ReportMonthlyRevenue,
		baseName:   fmt.Sprintf("reporte-ingresos-mensuales-%d", year),
		params:     fmt.Sprintf("Año: %d, Meses con datos: %d", year, months),
	}
}

func rangeRevenueRun(start, end time.Time, rows []domain.RevenueRow) reportRun {
	contracts := 0
	for i := range rows {
		contracts += rows[i].ContractCount
	}
	return reportRun{
		reportType: domain.ReportRangeRevenue,
		baseName:   rangeBaseName("reporte-ingresos", start, end),
		params:     rangeParams(start, end, "Contratos", contracts),
	}
}

// fetchRevenueData loads the contracts and invoices of a range concurrently.
func (s *reportService) fetchRevenueData(ctx context.Context, start, end time.Time) ([]domain.Contract, []domain.Invoice, error) {
	var (
		contracts []domain.Contract
		invoices  []domain.Invoice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contracts, err = s.contracts.ContractsInRange(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = s.invoices.InvoicesInRange(gctx, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return contracts, invoices, nil
}

func (s *reportService) buildMonthlyRevenue(ctx context.Context, year int) ([]domain.RevenueRow, error) {
	if err := s.validator.ValidateYear(year); err != nil {
		return nil, err
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	contracts, invoices, err := s.fetchRevenueData(ctx, start, end)
	if err != nil {
		return nil, s.fail(domain.ReportMonthlyRevenue, err)
	}

	var (
		contractsByMonth [13][]domain.Contract
		invoicesByMonth  [13][]domain.Invoice
	)
	for i := range contracts {
		c := contracts[i]
		if c.CreatedAt == nil || c.CreatedAt.Year() != year {
			continue
		}
		m := c.CreatedAt.Month()
		contractsByMonth[m] = append(contractsByMonth[m], c)
	}
	for i := range invoices {
		inv := invoices[i]
		if inv.IssuedAt.IsZero() || inv.IssuedAt.Year() != year {
			continue
		}
		m := inv.IssuedAt.Month()
		invoicesByMonth[m] = append(invoicesByMonth[m], inv)
	}

	rows := []domain.RevenueRow{}
	for m := time.January; m <= time.December; m++ {
		if len(contractsByMonth[m]) == 0 && len(invoicesByMonth[m]) == 0 {
			continue
		}
		rows = append(rows, aggregateRevenue(year, m, contractsByMonth[m], invoicesByMonth[m]))
	}

	s.log.Info("monthly revenue report built", zap.Int("year", year), zap.Int("months", len(rows)))
	return rows, nil
}

// buildRangeRevenue collapses the whole range into one row labelled with the
// month of start. found is false when neither source had data.
func (s *reportService) buildRangeRevenue(ctx context.Context, start, end time.Time) ([]domain.RevenueRow, bool, error) {
	if err := s.validator.Validate(start, end); err != nil {
		return nil, false, err
	}

	contracts, invoices, err := s.fetchRevenueData(ctx, start, end)
	if err != nil {
		return nil, false, s.fail(domain.ReportRangeRevenue, err)
	}
	if len(contracts) == 0 && len(invoices) == 0 {
		s.log.Info("no revenue data in range",
			zap.String("start", start.Format(isoDate)),
			zap.String("end", end.Format(isoDate)),
		)
		return []domain.RevenueRow{}, false, nil
	}

	row := aggregateRevenue(start.Year(), start.Month(), contracts, invoices)
	return []domain.RevenueRow{row}, true, nil
}

func aggregateRevenue(year int, month time.Month, contracts []domain.Contract, invoices []domain.Invoice) domain.RevenueRow {
	row := domain.RevenueRow{
		Year:           year,
		Month:          month,
		ContractCount:  len(contracts),
		Revenue:        decimal.Zero,
		Tax:            decimal.Zero,
		AvgPerContract: decimal.Zero,
	}
	for i := range invoices {
		row.Revenue = row.Revenue.Add(invoices[i].Total)
		row.Tax = row.Tax.Add(invoices[i].Tax)
	}
	if row.ContractCount > 0 {
		row.AvgPerContract = row.Revenue.DivRound(decimal.NewFromInt(int64(row.ContractCount)), 2)
	}

	customers := make(map[uuid.UUID]struct{})
	vehicles := make(map[uuid.UUID]struct{})
	for i := range contracts {
		c := &contracts[i]
		if id := c.ReferencedCustomerID(); id != nil {
			customers[*id] = struct{}{}
		}
		for j := range c.LineItems {
			if vid := c.LineItems[j].VehicleID; vid != nil {
				vehicles[*vid] = struct{}{}
			}
		}
	}
	row.CustomerCount = len(customers)
	row.VehicleCount = len(vehicles)
	return row
}
