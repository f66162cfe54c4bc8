package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/application/service"
	"github.com/sokoni/depot-api/internal/domain/enum"
	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/internal/presentation/http/dto/request"
	"github.com/sokoni/depot-api/internal/presentation/http/dto/response"
	"github.com/sokoni/depot-api/pkg/pagination"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products with filtering and sorting
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	stock, err := enum.ParseStockFilter(filter.Stock)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sortBy, err := enum.ParseProductSortField(filter.SortBy)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sortOrder, err := enum.ParseSortOrder(filter.SortOrder, enum.SortAsc)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := &repository.ProductFilterParams{
		Search:    filter.Search,
		Stock:     stock,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// ListAvailable handles listing in-stock products for sale entry
func (h *ProductHandler) ListAvailable(c *gin.Context) {
	products, err := h.productService.ListAvailableProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Available products retrieved successfully", products)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:                 req.Name,
		PackagingDescription: req.PackagingDescription,
		SKU:                  req.SKU,
		StockInSaleUnits:     req.StockInSaleUnits,
		PricePerSaleUnit:     req.PricePerSaleUnit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles product updates
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		Name:                 req.Name,
		PackagingDescription: req.PackagingDescription,
		SKU:                  req.SKU,
		StockInSaleUnits:     req.StockInSaleUnits,
		PricePerSaleUnit:     req.PricePerSaleUnit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
