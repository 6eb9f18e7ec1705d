package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentdesk/internal/domain"
	"rentdesk/internal/service"
	"rentdesk/internal/validator"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// GenerateInvoiceRequest is the body of POST /api/v1/invoices.
type GenerateInvoiceRequest struct {
	ContractID string `json:"contract_id" binding:"required,uuid"`
	Type       string `json:"type" binding:"required,invoice_type"`
}

// Generate handles POST /api/v1/invoices
// @Summary      Issue an invoice
// @Description  Issues the next numbered FACTURA or BOLETA for a finalized contract
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body body GenerateInvoiceRequest true "Contract and invoice type"
// @Success      201 {object} APIResponse{data=domain.Invoice}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Router       /invoices [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidInput, validator.BindingMessage(err))
		return
	}

	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, domain.CodeInvalidInput, "contract_id: must be a valid UUID")
		return
	}

	inv, err := h.invoiceService.Generate(c.Request.Context(), contractID, domain.InvoiceType(req.Type))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, inv)
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// GetByContract handles GET /api/v1/invoices/contract/:contractId
func (h *InvoiceHandler) GetByContract(c *gin.Context) {
	id, ok := parseID(c, "contractId")
	if !ok {
		return
	}
	inv, err := h.invoiceService.GetByContract(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// Void handles PUT /api/v1/invoices/:id/void
func (h *InvoiceHandler) Void(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoiceService.Void(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// InvoicesInRange handles POST /api/v1/invoices/range
func (h *InvoiceHandler) InvoicesInRange(c *gin.Context) {
	start, end, _, ok := bindRange(c)
	if !ok {
		return
	}
	invoices, err := h.invoiceService.InvoicesInRange(c.Request.Context(), start, end)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondList(c, invoices, len(invoices))
}
