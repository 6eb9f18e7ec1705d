package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rentdesk/internal/domain"
	"rentdesk/internal/port"
)

const generatedReportColumns = `id, report_type, format, file_name, generated_at,
	generated_by, parameters, size_bytes`

type generatedReportRepo struct {
	db *sqlx.DB
}

// NewGeneratedReportRepo creates a new PostgreSQL-backed GeneratedReportRepository.
func NewGeneratedReportRepo(db *sqlx.DB) port.GeneratedReportRepository {
	return &generatedReportRepo{db: db}
}

func (r *generatedReportRepo) Create(ctx context.Context, rep *domain.GeneratedReport) error {
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.GeneratedAt.IsZero() {
		rep.GeneratedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generated_reports (`+generatedReportColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rep.ID, rep.Type, rep.Format, rep.FileName, rep.GeneratedAt,
		rep.GeneratedBy, rep.Parameters, rep.SizeBytes)
	if err != nil {
		return fmt.Errorf("generatedReportRepo.Create: %w", err)
	}
	return nil
}

func (r *generatedReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedReport, error) {
	var rep domain.GeneratedReport
	err := r.db.GetContext(ctx, &rep,
		`SELECT `+generatedReportColumns+` FROM generated_reports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("generatedReportRepo.GetByID: %w", err)
	}
	return &rep, nil
}

func (r *generatedReportRepo) ListAll(ctx context.Context) ([]domain.GeneratedReport, error) {
	reps := []domain.GeneratedReport{}
	err := r.db.SelectContext(ctx, &reps,
		`SELECT `+generatedReportColumns+` FROM generated_reports ORDER BY generated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("generatedReportRepo.ListAll: %w", err)
	}
	return reps, nil
}

func (r *generatedReportRepo) ListByType(ctx context.Context, reportType domain.ReportType) ([]domain.GeneratedReport, error) {
	reps := []domain.GeneratedReport{}
	err := r.db.SelectContext(ctx, &reps,
		`SELECT `+generatedReportColumns+` FROM generated_reports
		 WHERE UPPER(report_type) = UPPER($1)
		 ORDER BY generated_at DESC`, reportType)
	if err != nil {
		return nil, fmt.Errorf("generatedReportRepo.ListByType: %w", err)
	}
	return reps, nil
}

// ListByGeneratedRange returns reports generated in [from, to), newest first.
func (r *generatedReportRepo) ListByGeneratedRange(ctx context.Context, from, to time.Time) ([]domain.GeneratedReport, error) {
	reps := []domain.GeneratedReport{}
	err := r.db.SelectContext(ctx, &reps,
		`SELECT `+generatedReportColumns+` FROM generated_reports
		 WHERE generated_at >= $1 AND generated_at < $2
		 ORDER BY generated_at DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("generatedReportRepo.ListByGeneratedRange: %w", err)
	}
	return reps, nil
}

func (r *generatedReportRepo) ListLatest(ctx context.Context, limit int) ([]domain.GeneratedReport, error) {
	reps := []domain.GeneratedReport{}
	err := r.db.SelectContext(ctx, &reps,
		`SELECT `+generatedReportColumns+` FROM generated_reports
		 ORDER BY generated_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("generatedReportRepo.ListLatest: %w", err)
	}
	return reps, nil
}
