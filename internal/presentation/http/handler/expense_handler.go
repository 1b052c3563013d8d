package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopmate/shopmate-api/internal/application/service"
	"github.com/shopmate/shopmate-api/internal/domain/repository"
	"github.com/shopmate/shopmate-api/internal/presentation/http/dto/request"
	"github.com/shopmate/shopmate-api/internal/presentation/http/dto/response"
	"github.com/shopmate/shopmate-api/pkg/pagination"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	reportService  *service.ReportService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService, reportService *service.ReportService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, reportService: reportService}
}

func expenseInputFromRequest(c *gin.Context, req *request.ExpenseRequest) (*service.ExpenseInput, bool) {
	input := &service.ExpenseInput{
		ShopID:      GetShopID(c),
		BranchID:    req.BranchID,
		Title:       req.Title,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.ExpenseDate != "" {
		t, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			response.BadRequest(c, "Invalid expense date, expected YYYY-MM-DD")
			return nil, false
		}
		input.ExpenseDate = t
	}
	return input, true
}

// Create handles expense creation
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, ok := expenseInputFromRequest(c, &req)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.reportService.InvalidateSummary(c.Request.Context())
	response.Created(c, "Expense recorded successfully", expense)
}

// Get handles retrieving a single expense
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

// Update handles expense updates
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req request.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, ok := expenseInputFromRequest(c, &req)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.reportService.InvalidateSummary(c.Request.Context())
	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles expense deletion
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.reportService.InvalidateSummary(c.Request.Context())
	response.OK(c, "Expense deleted successfully", nil)
}

// List handles listing expenses with filters
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ExpenseFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}

	if filter.BranchID != "" {
		if id, err := uuid.Parse(filter.BranchID); err == nil {
			params.BranchID = &id
		}
	}
	if filter.StartDate != "" {
		if t, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &t
		}
	}
	if filter.EndDate != "" {
		if t, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			params.EndDate = &t
		}
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}
