package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

// GeneratedReportHandler serves the log of produced reports.
type GeneratedReportHandler struct {
	queryService service.ReportQueryService
}

// NewGeneratedReportHandler creates a new GeneratedReportHandler.
func NewGeneratedReportHandler(queryService service.ReportQueryService) *GeneratedReportHandler {
	return &GeneratedReportHandler{queryService: queryService}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidInput, "invalid "+param+": must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /api/v1/reports/generated
func (h *GeneratedReportHandler) List(c *gin.Context) {
	reports, err := h.queryService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, reports, len(reports))
}

// Latest handles GET /api/v1/reports/generated/latest?limit=10
func (h *GeneratedReportHandler) Latest(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, domain.CodeInvalidInput, "invalid 'limit': must be an integer")
			return
		}
		limit = n
	}
	reports, err := h.queryService.Latest(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, reports, len(reports))
}

// GetByID handles GET /api/v1/reports/generated/:id
func (h *GeneratedReportHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rep, err := h.queryService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rep)
}

// DownloadURL handles GET /api/v1/reports/generated/:id/url
func (h *GeneratedReportHandler) DownloadURL(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	url, err := h.queryService.DownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// ListByType handles GET /api/v1/reports/generated/type/:type
func (h *GeneratedReportHandler) ListByType(c *gin.Context) {
	reports, err := h.queryService.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, reports, len(reports))
}

// ListByRange handles GET /api/v1/reports/generated/range?from=&to=
func (h *GeneratedReportHandler) ListByRange(c *gin.Context) {
	from, err := parseDate("from", c.Query("from"))
	if err != nil {
		HandleError(c, err)
		return
	}
	to, err := parseDate("to", c.Query("to"))
	if err != nil {
		HandleError(c, err)
		return
	}
	reports, err := h.queryService.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, reports, len(reports))
}
