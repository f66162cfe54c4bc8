package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/enum"
	"github.com/sokoni/depot-api/pkg/pagination"
)

// ErrDuplicateSaleNumber is returned by SaleTx.InsertSale when the generated
// sale number collides with an existing one. The caller retries the whole
// transaction with a fresh number.
var ErrDuplicateSaleNumber = errors.New("sale number already exists")

// SaleFilterParams holds filters for listing sales.
type SaleFilterParams struct {
	// UserID pins the listing to one seller. Nil lists all sellers
	// (admin view).
	UserID     *uuid.UUID
	// Search matches sale numbers and seller names, case-insensitive.
	Search     string
	Date       enum.DateFilter
	SortBy     enum.SaleSortField
	SortOrder  enum.SortOrder
	Pagination *pagination.PaginationParams
}

// SaleWithSeller is a sale listing row joined with its seller's display name
// and the number of line items.
type SaleWithSeller struct {
	entity.Sale
	SellerName string `json:"seller_name"`
	ItemsCount int64  `json:"items_count"`
}

// SaleTx is the set of statements available inside one sale transaction.
// Implementations guarantee that every call sees and mutates the same
// atomic unit of work: either all effects commit or none do.
type SaleTx interface {
	// LockProduct loads a product row with an exclusive row lock held until
	// the transaction ends. Returns (nil, nil) when the product does not
	// exist.
	LockProduct(id uuid.UUID) (*entity.Product, error)
	// DecrementStock is the conditional single-statement decrement of
	// ProductRepository.DecrementStock, executed inside this transaction.
	DecrementStock(id uuid.UUID, quantity int) (bool, error)
	InsertSale(sale *entity.Sale) error
	InsertSaleItems(items []entity.SaleItem) error
}

// SaleRepository defines the append-only sale ledger. Committed sales are
// never updated or deleted.
type SaleRepository interface {
	// Transaction runs fn inside one database transaction. Any error from fn
	// rolls back every statement issued through the SaleTx.
	Transaction(ctx context.Context, fn func(tx SaleTx) error) error
	// GetByID returns the sale with its items, item products and seller
	// preloaded, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]SaleWithSeller, int64, error)
}
