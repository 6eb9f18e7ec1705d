package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rentdesk/internal/csvexport"
	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/port"
	"rentdesk/internal/storage"
	"rentdesk/internal/validator"
	"rentdesk/internal/xlsxexport"
)

const isoDate = "2006-01-02"

// ReportService builds the payments, vehicle usage and revenue reports from
// the sibling services' data, as rows or as downloadable files.
type ReportService interface {
	Payments(ctx context.Context, start, end time.Time) ([]domain.PaymentRow, error)
	ExportPayments(ctx context.Context, start, end time.Time, format domain.ReportFormat) (*domain.ReportFile, error)

	VehicleUsage(ctx context.Context, start, end time.Time) ([]domain.VehicleUsageRow, error)
	VehicleUsageSummary(ctx context.Context, start, end time.Time) (*domain.VehicleUsageSummary, error)
	ExportVehicleUsage(ctx context.Context, start, end time.Time, format domain.ReportFormat) (*domain.ReportFile, error)

	MonthlyRevenue(ctx context.Context, year int) ([]domain.RevenueRow, error)
	ExportMonthlyRevenue(ctx context.Context, year int, format domain.ReportFormat) (*domain.ReportFile, error)
	RangeRevenue(ctx context.Context, start, end time.Time) ([]domain.RevenueRow, error)
	ExportRangeRevenue(ctx context.Context, start, end time.Time, format domain.ReportFormat) (*domain.ReportFile, error)
}

// ReportDeps groups the collaborators of the report service.
type ReportDeps struct {
	Contracts    port.ContractSource
	Invoices     port.InvoiceSource
	Customers    port.CustomerSource
	Vehicles     port.VehicleSource
	// VehicleCache is set when Vehicles is served from a cache.
	VehicleCache port.CatalogInvalidator
	Validator    *validator.RangeValidator
	Audit        port.AuditSink
	Archive      port.ReportArchive
	Actor        string
	KeyPrefix    string
	Logger       *zap.Logger
}

type reportService struct {
	contracts port.ContractSource
	invoices  port.InvoiceSource
	customers port.CustomerSource
	vehicles  port.VehicleSource
	catalog   port.CatalogInvalidator
	validator *validator.RangeValidator
	audit     port.AuditSink
	archive   port.ReportArchive
	actor     string
	keyPrefix string
	log       *zap.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(deps ReportDeps) ReportService {
	s := &reportService{
		contracts: deps.Contracts,
		invoices:  deps.Invoices,
		customers: deps.Customers,
		vehicles:  deps.Vehicles,
		catalog:   deps.VehicleCache,
		validator: deps.Validator,
		audit:     deps.Audit,
		archive:   deps.Archive,
		actor:     deps.Actor,
		keyPrefix: deps.KeyPrefix,
		log:       logger.OrNop(deps.Logger),
	}
	if s.validator == nil {
		s.validator = validator.NewRangeValidator(nil)
	}
	if s.archive == nil {
		s.archive = storage.NewNoopArchive()
	}
	if s.actor == "" {
		s.actor = "SISTEMA"
	}
	return s
}

// reportRun describes one produced report for auditing and file naming.
type reportRun struct {
	reportType domain.ReportType
	baseName   string
	params     string
}

func (r reportRun) fileName(format domain.ReportFormat) string {
	return csvexport.BuildFilename(r.baseName, format.Extension())
}

// fail keeps validation and upstream errors intact and wraps anything else
// as a generation failure of the given report.
func (s *reportService) fail(reportType domain.ReportType, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrRemote),
		errors.Is(err, domain.ErrRemoteUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	}
	s.log.Error("report generation failed",
		zap.String("report", string(reportType)),
		zap.Error(err),
	)
	return &domain.ReportGenerationError{Report: reportType, Err: err}
}

// record hands an audit entry to the sink. It never fails the caller.
func (s *reportService) record(run reportRun, format domain.ReportFormat, size *int64) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.GeneratedReport{
		Type:        run.reportType,
		Format:      format,
		FileName:    run.fileName(format),
		GeneratedAt: s.validator.Now().UTC(),
		GeneratedBy: s.actor,
		Parameters:  run.params,
		SizeBytes:   size,
	})
}

// export renders table, archives the file when an archive is configured and
// records the audit entry with the file size.
func (s *reportService) export(ctx context.Context, run reportRun, format domain.ReportFormat, table *domain.ReportTable) (*domain.ReportFile, error) {
	var (
		content []byte
		err     error
	)
	switch format {
	case domain.FormatCSV:
		content, err = csvexport.Render(table)
	case domain.FormatExcel, "":
		format = domain.FormatExcel
		content, err = xlsxexport.Render(table)
	default:
		return nil, domain.NewValidationError(domain.CodeInvalidInput, "unsupported export format %q", format)
	}
	if err != nil {
		return nil, s.fail(run.reportType, fmt.Errorf("rendering %s: %w", format, err))
	}

	file := &domain.ReportFile{
		FileName:    run.fileName(format),
		ContentType: format.ContentType(),
		Content:     content,
	}

	if s.archive.Enabled() {
		key := storage.ReportKey(s.keyPrefix, run.reportType, file.FileName)
		if err := s.archive.Store(ctx, key, file.ContentType, content); err != nil {
			s.log.Warn("archiving report failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	size := int64(len(content))
	s.record(run, format, &size)
	return file, nil
}

// generatedSubtitle is the second banner line of an exported workbook.
func (s *reportService) generatedSubtitle(format string, count int) string {
	return fmt.Sprintf(format, count) + " | Fecha de generación: " + s.validator.Now().Format("02/01/2006 15:04")
}

func rangeBaseName(prefix string, start, end time.Time) string {
	return fmt.Sprintf("%s-%s-a-%s", prefix, start.Format(isoDate), end.Format(isoDate))
}

func rangeParams(start, end time.Time, label string, count int) string {
	return fmt.Sprintf("FechaInicio: %s, FechaFin: %s, %s: %d",
		start.Format(isoDate), end.Format(isoDate), label, count)
}
