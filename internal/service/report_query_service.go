package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
	"rentdesk/internal/storage"
	"rentdesk/internal/validator"
)

const (
	defaultLatestLimit = 10
	maxLatestLimit     = 100
)

// ReportQueryService reads the generated-report log.
type ReportQueryService interface {
	List(ctx context.Context) ([]domain.GeneratedReport, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedReport, error)
	ListByType(ctx context.Context, reportType string) ([]domain.GeneratedReport, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.GeneratedReport, error)
	Latest(ctx context.Context, limit int) ([]domain.GeneratedReport, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (string, error)
}

type reportQueryService struct {
	repo      port.GeneratedReportRepository
	archive   port.ReportArchive
	keyPrefix string
}

// NewReportQueryService creates a new ReportQueryService.
func NewReportQueryService(repo port.GeneratedReportRepository, archive port.ReportArchive, keyPrefix string) ReportQueryService {
	if archive == nil {
		archive = storage.NewNoopArchive()
	}
	return &reportQueryService{repo: repo, archive: archive, keyPrefix: keyPrefix}
}

func (s *reportQueryService) List(ctx context.Context) ([]domain.GeneratedReport, error) {
	return s.repo.ListAll(ctx)
}

func (s *reportQueryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedReport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reportQueryService) ListByType(ctx context.Context, reportType string) ([]domain.GeneratedReport, error) {
	reportType = strings.TrimSpace(reportType)
	if reportType == "" {
		return nil, domain.NewValidationError(domain.CodeInvalidInput, "report type is required")
	}
	return s.repo.ListByType(ctx, domain.ReportType(reportType))
}

// ListByDateRange returns reports generated on the calendar days from..to.
func (s *reportQueryService) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.GeneratedReport, error) {
	if from.IsZero() || to.IsZero() {
		return nil, domain.NewValidationError(domain.CodeMissingDate, "from and to dates are required")
	}
	lo, hi := validator.CivilDate(from), validator.CivilDate(to)
	if hi.Before(lo) {
		return nil, domain.NewValidationError(domain.CodeInvertedRange, "to date cannot be before from date")
	}
	return s.repo.ListByGeneratedRange(ctx, lo, hi.AddDate(0, 0, 1))
}

func (s *reportQueryService) Latest(ctx context.Context, limit int) ([]domain.GeneratedReport, error) {
	if limit <= 0 {
		limit = defaultLatestLimit
	}
	if limit > maxLatestLimit {
		limit = maxLatestLimit
	}
	return s.repo.ListLatest(ctx, limit)
}

// DownloadURL presigns the archived file of an exported report.
func (s *reportQueryService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	if !s.archive.Enabled() {
		return "", domain.ErrArchiveDisabled
	}
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if rep.Format == domain.FormatJSON {
		return "", fmt.Errorf("report %s has no file: %w", id, domain.ErrNotFound)
	}
	return s.archive.URL(ctx, storage.ReportKey(s.keyPrefix, rep.Type, rep.FileName))
}
