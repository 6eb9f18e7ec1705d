package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentdesk/internal/domain"
	"rentdesk/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListMeta holds list metadata.
type ListMeta struct {
	Total int `json:"total"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondList sends a 200 success response carrying the item count.
func RespondList(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &ListMeta{Total: total}})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondFile sends a rendered report as an attachment.
func RespondFile(c *gin.Context, file *domain.ReportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Code, verr.Message
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, domain.CodeInvalidInput, err.Error()
	case errors.Is(err, domain.ErrContractNotFound):
		return http.StatusNotFound, "CONTRACT_NOT_FOUND", "contract not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound, "REPORT_NOT_FOUND", "generated report not found"
	case errors.Is(err, domain.ErrArchiveDisabled):
		return http.StatusNotFound, "ARCHIVE_DISABLED", "report files are not archived"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrContractNotFinalized):
		return http.StatusUnprocessableEntity, "CONTRACT_NOT_FINALIZED", "invoices can only be issued for finalized contracts"
	case errors.Is(err, domain.ErrDuplicateInvoice):
		return http.StatusConflict, "DUPLICATE_INVOICE", "an invoice already exists for this contract"
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "a dependent service is unavailable"
	case errors.Is(err, domain.ErrRemote):
		return http.StatusBadGateway, "UPSTREAM_ERROR", "a dependent service returned an error"
	case errors.Is(err, domain.ErrReportGeneration):
		return http.StatusInternalServerError, "REPORT_GENERATION_FAILED", "the report could not be generated"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= http.StatusInternalServerError {
		middleware.RequestLogger(c).Error("request failed",
			zap.String("code", code),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}
