package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/domain"
	"rentdesk/internal/handler"
	"rentdesk/mocks"
)

func newReportRouter() (*gin.Engine, *mocks.MockReportService) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	r := gin.New()
	g := r.Group("/api/v1/reports")
	g.POST("/payments/data", h.PaymentsData)
	g.POST("/payments/export", h.PaymentsExport)
	g.POST("/vehicle-usage/summary", h.VehicleUsageSummary)
	g.GET("/monthly-revenue/:year/data", h.MonthlyRevenueData)
	g.GET("/monthly-revenue/:year/export", h.MonthlyRevenueExport)
	return r, svc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReportHandler_PaymentsData(t *testing.T) {
	r, svc := newReportRouter()
	rows := []domain.PaymentRow{{InvoiceNumber: "B001-000001"}}
	svc.On("Payments", mock.Anything, date(2024, 3, 1), date(2024, 3, 31)).Return(rows, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/reports/payments/data",
		map[string]string{"start": "2024-03-01", "end": "2024-03-31"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	svc.AssertExpectations(t)
}

func TestReportHandler_MissingDateReachesValidator(t *testing.T) {
	r, svc := newReportRouter()
	svc.On("Payments", mock.Anything, time.Time{}, date(2024, 3, 31)).
		Return(nil, domain.NewValidationError(domain.CodeMissingDate, "start date is required"))

	w := doJSON(r, http.MethodPost, "/api/v1/reports/payments/data", map[string]string{"end": "2024-03-31"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.CodeMissingDate, resp.Error.Code)
}

func TestReportHandler_MalformedDate(t *testing.T) {
	r, svc := newReportRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/reports/payments/data",
		map[string]string{"start": "01/03/2024", "end": "2024-03-31"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Payments", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportHandler_UnknownFormatRejectedByBinding(t *testing.T) {
	r, svc := newReportRouter()

	w := doJSON(r, http.MethodPost, "/api/v1/reports/payments/export",
		map[string]string{"start": "2024-03-01", "end": "2024-03-31", "format": "PDF"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "format")
	svc.AssertNotCalled(t, "ExportPayments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportHandler_PaymentsExportSendsAttachment(t *testing.T) {
	r, svc := newReportRouter()
	file := &domain.ReportFile{
		FileName:    "reporte-pagos-2024-03-01-a-2024-03-31.csv",
		ContentType: domain.FormatCSV.ContentType(),
		Content:     []byte("a,b\n"),
	}
	svc.On("ExportPayments", mock.Anything, date(2024, 3, 1), date(2024, 3, 31), domain.FormatCSV).Return(file, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/reports/payments/export",
		map[string]string{"start": "2024-03-01", "end": "2024-03-31", "format": "csv"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="reporte-pagos-2024-03-01-a-2024-03-31.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", w.Body.String())
}

func TestReportHandler_UpstreamUnavailable(t *testing.T) {
	r, svc := newReportRouter()
	svc.On("VehicleUsageSummary", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &domain.RemoteError{Service: "vehicles"})

	w := doJSON(r, http.MethodPost, "/api/v1/reports/vehicle-usage/summary",
		map[string]string{"start": "2024-03-01", "end": "2024-03-10"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReportHandler_MonthlyRevenue(t *testing.T) {
	r, svc := newReportRouter()
	svc.On("MonthlyRevenue", mock.Anything, 2024).Return([]domain.RevenueRow{}, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/reports/monthly-revenue/2024/data", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/reports/monthly-revenue/abc/data", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.CodeInvalidYear, decode(t, w).Error.Code)
}

func TestReportHandler_MonthlyRevenueExportDefaultsToExcel(t *testing.T) {
	r, svc := newReportRouter()
	svc.On("ExportMonthlyRevenue", mock.Anything, 2024, domain.FormatExcel).Return(&domain.ReportFile{
		FileName:    "reporte-ingresos-mensuales-2024.xlsx",
		ContentType: domain.FormatExcel.ContentType(),
		Content:     []byte("PK"),
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/reports/monthly-revenue/2024/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reporte-ingresos-mensuales-2024.xlsx")

	w = doJSON(r, http.MethodGet, "/api/v1/reports/monthly-revenue/2024/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
