package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/enum"
	"github.com/sokoni/depot-api/pkg/pagination"
)

// ProductFilterParams holds filters for listing products. Sort fields and
// directions are closed enumerations validated at the HTTP boundary.
type ProductFilterParams struct {
	Search     string
	Stock      enum.StockFilter
	SortBy     enum.ProductSortField
	SortOrder  enum.SortOrder
	Pagination *pagination.PaginationParams
}

// ProductRepository defines the catalog store.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID returns (nil, nil) when the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListAvailable returns every in-stock product ordered by name, for
	// sale-entry screens.
	ListAvailable(ctx context.Context) ([]entity.Product, error)
	// ListLowStock returns products at or below the given stock threshold.
	ListLowStock(ctx context.Context, threshold int) ([]entity.Product, error)
	// CountSaleReferences counts sale items pointing at the product. A
	// referenced product must not be deleted.
	CountSaleReferences(ctx context.Context, id uuid.UUID) (int64, error)
	// DecrementStock subtracts quantity in a single conditional write that
	// only applies while stock >= quantity. It returns false, without
	// mutating anything, when stock is insufficient.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)
}
