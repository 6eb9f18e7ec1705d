package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
)

// MockGeneratedReportRepo is a mock implementation of port.GeneratedReportRepository.
type MockGeneratedReportRepo struct {
	mock.Mock
}

func (m *MockGeneratedReportRepo) Create(ctx context.Context, rep *domain.GeneratedReport) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}

func (m *MockGeneratedReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedReport), args.Error(1)
}

func (m *MockGeneratedReportRepo) ListAll(ctx context.Context) ([]domain.GeneratedReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedReport), args.Error(1)
}

func (m *MockGeneratedReportRepo) ListByType(ctx context.Context, reportType domain.ReportType) ([]domain.GeneratedReport, error) {
	args := m.Called(ctx, reportType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedReport), args.Error(1)
}

func (m *MockGeneratedReportRepo) ListByGeneratedRange(ctx context.Context, from, to time.Time) ([]domain.GeneratedReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedReport), args.Error(1)
}

func (m *MockGeneratedReportRepo) ListLatest(ctx context.Context, limit int) ([]domain.GeneratedReport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedReport), args.Error(1)
}
