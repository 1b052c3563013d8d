package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/application/service"
	"github.com/shopmate/shopmate-api/internal/presentation/http/dto/request"
	"github.com/shopmate/shopmate-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice composer HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Draft returns the composer state for a sale, seeded from its line items
// or restored from a previously confirmed snapshot
func (h *InvoiceHandler) Draft(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("saleId"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	draft, err := h.invoiceService.GetDraft(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice draft retrieved successfully", draft)
}

// Preview recomputes derived figures for an edited layout without persisting
func (h *InvoiceHandler) Preview(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("saleId"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.InvoicePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	draft, err := h.invoiceService.Preview(c.Request.Context(), &service.PreviewInput{
		SaleID:  saleID,
		Columns: req.Columns,
		Rows:    req.Rows,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice preview computed successfully", draft)
}

// Confirm persists the layout as the sale's invoice and completes the sale
func (h *InvoiceHandler) Confirm(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("saleId"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.InvoicePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.Confirm(c.Request.Context(), &service.PreviewInput{
		SaleID:  saleID,
		Columns: req.Columns,
		Rows:    req.Rows,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice confirmed successfully", invoice)
}

// BySale retrieves the confirmed invoice for a sale, if one exists
func (h *InvoiceHandler) BySale(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("saleId"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoiceBySale(c.Request.Context(), saleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Get retrieves a confirmed invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Download renders the invoice as a PDF attachment
func (h *InvoiceHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	data, filename, err := h.invoiceService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", data)
}

// Send emails the invoice PDF to the sale's customer
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.SendByEmail(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice sent successfully", nil)
}
