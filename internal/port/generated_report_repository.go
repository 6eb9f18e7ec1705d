package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentdesk/internal/domain"
)

// GeneratedReportRepository defines the contract for the generated-report log.
type GeneratedReportRepository interface {
	Create(ctx context.Context, rep *domain.GeneratedReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedReport, error)
	ListAll(ctx context.Context) ([]domain.GeneratedReport, error)
	ListByType(ctx context.Context, reportType domain.ReportType) ([]domain.GeneratedReport, error)
	ListByGeneratedRange(ctx context.Context, from, to time.Time) ([]domain.GeneratedReport, error)
	ListLatest(ctx context.Context, limit int) ([]domain.GeneratedReport, error)
}
