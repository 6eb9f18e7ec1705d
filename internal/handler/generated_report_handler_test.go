package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentdesk/internal/domain"
	"rentdesk/internal/handler"
	"rentdesk/mocks"
)

func newGeneratedRouter() (*gin.Engine, *mocks.MockReportQueryService) {
	svc := new(mocks.MockReportQueryService)
	h := handler.NewGeneratedReportHandler(svc)
	r := gin.New()
	g := r.Group("/api/v1/reports/generated")
	g.GET("", h.List)
	g.GET("/latest", h.Latest)
	g.GET("/range", h.ListByRange)
	g.GET("/type/:type", h.ListByType)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/url", h.DownloadURL)
	return r, svc
}

func TestGeneratedReportHandler_Latest(t *testing.T) {
	r, svc := newGeneratedRouter()
	svc.On("Latest", mock.Anything, 5).Return([]domain.GeneratedReport{{Type: domain.ReportPayments}}, nil)
	svc.On("Latest", mock.Anything, 0).Return([]domain.GeneratedReport{}, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/reports/generated/latest?limit=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode(t, w).Meta.Total)

	w = doJSON(r, http.MethodGet, "/api/v1/reports/generated/latest", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/reports/generated/latest?limit=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratedReportHandler_Range(t *testing.T) {
	r, svc := newGeneratedRouter()
	svc.On("ListByDateRange", mock.Anything, date(2024, 3, 1), date(2024, 3, 2)).Return([]domain.GeneratedReport{}, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/reports/generated/range?from=2024-03-01&to=2024-03-02", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/reports/generated/range?from=bad&to=2024-03-02", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratedReportHandler_ByType(t *testing.T) {
	r, svc := newGeneratedRouter()
	svc.On("ListByType", mock.Anything, "pagos").Return([]domain.GeneratedReport{}, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/reports/generated/type/pagos", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGeneratedReportHandler_GetByID(t *testing.T) {
	r, svc := newGeneratedRouter()
	id := uuid.New()
	svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrReportNotFound)

	w := doJSON(r, http.MethodGet, "/api/v1/reports/generated/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "REPORT_NOT_FOUND", decode(t, w).Error.Code)
}

func TestGeneratedReportHandler_DownloadURL(t *testing.T) {
	r, svc := newGeneratedRouter()
	ok, disabled, broken := uuid.New(), uuid.New(), uuid.New()
	svc.On("DownloadURL", mock.Anything, ok).Return("https://signed.example/x", nil)
	svc.On("DownloadURL", mock.Anything, disabled).Return("", domain.ErrArchiveDisabled)
	svc.On("DownloadURL", mock.Anything, broken).Return("", errors.New("presign: "+context.DeadlineExceeded.Error()))

	w := doJSON(r, http.MethodGet, "/api/v1/reports/generated/"+ok.String()+"/url", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://signed.example/x")

	w = doJSON(r, http.MethodGet, "/api/v1/reports/generated/"+disabled.String()+"/url", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/reports/generated/"+broken.String()+"/url", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
