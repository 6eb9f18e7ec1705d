package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Payments(ctx context.Context, start, end time.Time) ([]domain.PaymentRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRow), args.Error(1)
}

func (m *MockReportService) ExportPayments(ctx context.Context, start, end time.Time, format domain.ReportFormat) (*domain.ReportFile, error) {
	args := m.Called(ctx, start, end, format)
	return reportFile(args)
}

func (m *MockReportService) VehicleUsage(ctx context.Context, start, end time.Time) ([]domain.VehicleUsageRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VehicleUsageRow), args.Error(1)
}

func (m *MockReportService) VehicleUsageSummary(ctx context.Context, start, end time.Time) (*domain.VehicleUsageSummary, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleUsageSummary), args.Error(1)
}

func (m *MockReportService) ExportVehicleUsage(ctx context.Context, start, end time.Time, format domain.ReportFormat) (*domain.ReportFile, error) {
	args := m.Called(ctx, start, end, format)
	return reportFile(args)
}

func (m *MockReportService) MonthlyRevenue(ctx context.Context, year int) ([]domain.RevenueRow, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueRow), args.Error(1)
}

func (m *MockReportService) ExportMonthlyRevenue(ctx context.Context, year int, format domain.ReportFormat) (*domain.ReportFile, error) {
	args := m.Called(ctx, year, format)
	return reportFile(args)
}

func (m *MockReportService) RangeRevenue(ctx context.Context, start, end time.Time) ([]domain.RevenueRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueRow), args.Error(1)
}

func (m *MockReportService) ExportRangeRevenue(ctx context.Context, start, end time.Time, format domain.ReportFormat) (*domain.ReportFile, error) {
	args := m.Called(ctx, start, end, format)
	return reportFile(args)
}

func reportFile(args mock.Arguments) (*domain.ReportFile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportFile), args.Error(1)
}

// MockReportQueryService is a mock implementation of service.ReportQueryService.
type MockReportQueryService struct {
	mock.Mock
}

func (m *MockReportQueryService) List(ctx context.Context) ([]domain.GeneratedReport, error) {
	return generatedReports(m.Called(ctx))
}

func (m *MockReportQueryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedReport), args.Error(1)
}

func (m *MockReportQueryService) ListByType(ctx context.Context, reportType string) ([]domain.GeneratedReport, error) {
	return generatedReports(m.Called(ctx, reportType))
}

func (m *MockReportQueryService) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.GeneratedReport, error) {
	return generatedReports(m.Called(ctx, from, to))
}

func (m *MockReportQueryService) Latest(ctx context.Context, limit int) ([]domain.GeneratedReport, error) {
	return generatedReports(m.Called(ctx, limit))
}

func (m *MockReportQueryService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func generatedReports(args mock.Arguments) ([]domain.GeneratedReport, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedReport), args.Error(1)
}
