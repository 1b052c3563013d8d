package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopmate/shopmate-api/internal/application/service"
	"github.com/shopmate/shopmate-api/internal/presentation/http/dto/request"
	"github.com/shopmate/shopmate-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary returns the financial summary for a timeframe (3m, 6m, 12m)
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.GetSummary(c.Request.Context(), c.Query("timeframe"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report summary retrieved successfully", summary)
}

func statementRange(c *gin.Context) (time.Time, time.Time, bool) {
	var req request.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "start_date and end_date are required")
		return time.Time{}, time.Time{}, false
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	// Include the whole end day
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, true
}

// Statement returns the sale/expense ledger for a date range
func (h *ReportHandler) Statement(c *gin.Context) {
	start, end, ok := statementRange(c)
	if !ok {
		return
	}

	entries, err := h.reportService.GetStatement(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement retrieved successfully", entries)
}

// Export downloads the statement for a date range as an XLSX workbook
func (h *ReportHandler) Export(c *gin.Context) {
	start, end, ok := statementRange(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.ExportStatement(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
