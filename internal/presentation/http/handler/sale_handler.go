package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/application/service"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/enum"
	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/internal/presentation/http/dto/request"
	"github.com/sokoni/depot-api/internal/presentation/http/dto/response"
	"github.com/sokoni/depot-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles sale creation
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]entity.SaleLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, entity.SaleLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		UserID: *userID,
		Lines:  lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", result)
}

// Get handles retrieving a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), *userID, IsAdmin(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing sales with filtering and sorting
func (h *SaleHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	date, err := enum.ParseDateFilter(filter.Date)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sortBy, err := enum.ParseSaleSortField(filter.SortBy)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sortOrder, err := enum.ParseSortOrder(filter.SortOrder, enum.SortDesc)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &repository.SaleFilterParams{
		Search:    filter.Search,
		Date:      date,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}

	result, err := h.saleService.ListSales(c.Request.Context(), *userID, IsAdmin(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}
