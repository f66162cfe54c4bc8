package request

// CreateProductRequest represents a product creation request. Price is a
// decimal string so amounts arrive without binary float rounding.
type CreateProductRequest struct {
	Name                 string  `json:"name" binding:"required,min=2,max=255"`
	PackagingDescription string  `json:"packaging_description" binding:"max=255"`
	SKU                  *string `json:"sku" binding:"omitempty,max=100"`
	StockInSaleUnits     int     `json:"stock_in_sale_units" binding:"min=0"`
	PricePerSaleUnit     string  `json:"price_per_sale_unit" binding:"required"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name                 string  `json:"name" binding:"required,min=2,max=255"`
	PackagingDescription string  `json:"packaging_description" binding:"max=255"`
	SKU                  *string `json:"sku" binding:"omitempty,max=100"`
	StockInSaleUnits     int     `json:"stock_in_sale_units" binding:"min=0"`
	PricePerSaleUnit     string  `json:"price_per_sale_unit" binding:"required"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Stock     string `form:"stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
