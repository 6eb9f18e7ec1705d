package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rentdesk/internal/domain"
	"rentdesk/internal/service"
	"rentdesk/internal/validator"
)

const dateLayout = "2006-01-02"

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RangeRequest is the body of the range based report endpoints.
type RangeRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Format string `json:"format" binding:"omitempty,report_format"`
}

// parseDate parses a YYYY-MM-DD value. Empty input yields the zero time so
// the range validator can report the missing date.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(domain.CodeInvalidInput, "invalid '%s' date: must be YYYY-MM-DD", field)
	}
	return t, nil
}

// bindRange decodes and parses a RangeRequest, writing the error response
// itself when it fails.
func bindRange(c *gin.Context) (start, end time.Time, format domain.ReportFormat, ok bool) {
	var req RangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidInput, validator.BindingMessage(err))
		return start, end, "", false
	}
	var err error
	if start, err = parseDate("start", req.Start); err != nil {
		HandleError(c, err)
		return start, end, "", false
	}
	if end, err = parseDate("end", req.End); err != nil {
		HandleError(c, err)
		return start, end, "", false
	}
	format, _ = domain.ParseReportFormat(req.Format)
	return start, end, format, true
}

// PaymentsData handles POST /api/v1/reports/payments/data
// @Summary      Payments report
// @Description  Invoices issued in the range joined with contract and customer
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body body RangeRequest true "Date range"
// @Success      200 {object} APIResponse{data=[]domain.PaymentRow}
// @Failure      400 {object} APIResponse
// @Failure      502 {object} APIResponse
// @Router       /reports/payments/data [post]
func (h *ReportHandler) PaymentsData(c *gin.Context) {
	start, end, _, ok := bindRange(c)
	if !ok {
		return
	}
	rows, err := h.reportService.Payments(c.Request.Context(), start, end)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, rows, len(rows))
}

// PaymentsExport handles POST /api/v1/reports/payments/export
func (h *ReportHandler) PaymentsExport(c *gin.Context) {
	start, end, format, ok := bindRange(c)
	if !ok {
		return
	}
	file, err := h.reportService.ExportPayments(c.Request.Context(), start, end, format)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondFile(c, file)
}

// VehicleUsageData handles POST /api/v1/reports/vehicle-usage/data
// @Summary      Vehicle usage report
// @Description  Rented days, contracts and revenue per catalog vehicle
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body body RangeRequest true "Date range"
// @Success      200 {object} APIResponse{data=[]domain.VehicleUsageRow}
// @Failure      400 {object} APIResponse
// @Router       /reports/vehicle-usage/data [post]
func (h *ReportHandler) VehicleUsageData(c *gin.Context) {
	start, end, _, ok := bindRange(c)
	if !ok {
		return
	}
	rows, err := h.reportService.VehicleUsage(c.Request.Context(), start, end)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, rows, len(rows))
}

// VehicleUsageSummary handles POST /api/v1/reports/vehicle-usage/summary
func (h *ReportHandler) VehicleUsageSummary(c *gin.Context) {
	start, end, _, ok := bindRange(c)
	if !ok {
		return
	}
	summary, err := h.reportService.VehicleUsageSummary(c.Request.Context(), start, end)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}

// VehicleUsageExport handles POST /api/v1/reports/vehicle-usage/export
func (h *ReportHandler) VehicleUsageExport(c *gin.Context) {
	start, end, format, ok := bindRange(c)
	if !ok {
		return
	}
	file, err := h.reportService.ExportVehicleUsage(c.Request.Context(), start, end, format)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondFile(c, file)
}

func parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidYear, "year must be a number")
		return 0, false
	}
	return year, true
}

// MonthlyRevenueData handles GET /api/v1/reports/monthly-revenue/:year/data
// @Summary      Monthly revenue
// @Description  Contracts and invoices of a year grouped by month
// @Tags         reports
// @Produce      json
// @Param        year path int true "Year"
// @Success      200 {object} APIResponse{data=[]domain.RevenueRow}
// @Failure      400 {object} APIResponse
// @Router       /reports/monthly-revenue/{year}/data [get]
func (h *ReportHandler) MonthlyRevenueData(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	rows, err := h.reportService.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, rows, len(rows))
}

// MonthlyRevenueExport handles GET /api/v1/reports/monthly-revenue/:year/export
func (h *ReportHandler) MonthlyRevenueExport(c *gin.Context) {
	year, ok := parseYear(c)
	if !ok {
		return
	}
	format, valid := domain.ParseReportFormat(c.Query("format"))
	if !valid {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidInput, "format: must be EXCEL or CSV")
		return
	}
	file, err := h.reportService.ExportMonthlyRevenue(c.Request.Context(), year, format)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondFile(c, file)
}

// RevenueData handles POST /api/v1/reports/revenue/data
func (h *ReportHandler) RevenueData(c *gin.Context) {
	start, end, _, ok := bindRange(c)
	if !ok {
		return
	}
	rows, err := h.reportService.RangeRevenue(c.Request.Context(), start, end)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, rows, len(rows))
}

// RevenueExport handles POST /api/v1/reports/revenue/export
func (h *ReportHandler) RevenueExport(c *gin.Context) {
	start, end, format, ok := bindRange(c)
	if !ok {
		return
	}
	file, err := h.reportService.ExportRangeRevenue(c.Request.Context(), start, end, format)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondFile(c, file)
}
