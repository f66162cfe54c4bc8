package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/apperror"
	"github.com/sokoni/depot-api/pkg/pagination"
	"go.uber.org/zap"
)

// saleNumberAttempts bounds retries when a generated sale number collides.
const saleNumberAttempts = 3

// SaleService coordinates sale creation against the catalog and the ledger
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID uuid.UUID
	Lines  []entity.SaleLine
}

// CreateSaleResult carries the committed sale together with the receipt
// assembled from its snapshot rows.
type CreateSaleResult struct {
	Sale    *entity.Sale    `json:"sale"`
	Receipt *entity.Receipt `json:"receipt"`
}

// CreateSale records a sale and decrements stock for every line, all inside
// one database transaction. Either every line commits or none does: any
// missing product, invalid quantity or insufficient stock rolls the whole
// sale back and leaves stock untouched. The committed sale comes back with
// its receipt already assembled.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*CreateSaleResult, error) {
	// Fail fast on malformed input before touching the database
	if len(input.Lines) == 0 {
		return nil, apperror.NewValidationError("Sale must contain at least one item")
	}
	seen := make(map[uuid.UUID]bool, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewValidationError(
				fmt.Sprintf("Quantity for product %s must be positive", line.ProductID))
		}
		if seen[line.ProductID] {
			return nil, apperror.NewValidationError(
				fmt.Sprintf("Product %s appears more than once", line.ProductID))
		}
		seen[line.ProductID] = true
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	// Lock products in a fixed order so concurrent sales touching the same
	// products cannot deadlock
	lockOrder := make([]entity.SaleLine, len(input.Lines))
	copy(lockOrder, input.Lines)
	sort.Slice(lockOrder, func(i, j int) bool {
		return strings.Compare(lockOrder[i].ProductID.String(), lockOrder[j].ProductID.String()) < 0
	})

	var sale *entity.Sale
	for attempt := 1; attempt <= saleNumberAttempts; attempt++ {
		saleNumber := generateSaleNumber()

		err = s.saleRepo.Transaction(ctx, func(tx repository.SaleTx) error {
			products := make(map[uuid.UUID]*entity.Product, len(lockOrder))

			for _, line := range lockOrder {
				product, err := tx.LockProduct(line.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
				}
				if product.StockInSaleUnits < line.Quantity {
					return &apperror.InsufficientStockError{
						ProductName: product.Name,
						Requested:   line.Quantity,
						Available:   product.StockInSaleUnits,
					}
				}
				products[line.ProductID] = product
			}

			for _, line := range lockOrder {
				ok, err := tx.DecrementStock(line.ProductID, line.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					// Should not happen while the row lock is held
					product := products[line.ProductID]
					return &apperror.InsufficientStockError{
						ProductName: product.Name,
						Requested:   line.Quantity,
						Available:   product.StockInSaleUnits,
					}
				}
			}

			// Items keep the caller's line order, not the lock order
			items, total := entity.ComputeSaleItems(input.Lines, products)

			sale = &entity.Sale{
				UserID:      input.UserID,
				SaleNumber:  saleNumber,
				TotalAmount: total,
				Date:        time.Now(),
			}
			if err := tx.InsertSale(sale); err != nil {
				return err
			}

			for i := range items {
				items[i].SaleID = sale.ID
			}
			if err := tx.InsertSaleItems(items); err != nil {
				return err
			}

			sale.Items = items
			return nil
		})

		if errors.Is(err, repository.ErrDuplicateSaleNumber) {
			s.logger.Warn("sale number collision, retrying",
				zap.String("sale_number", saleNumber),
				zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("sale created",
			zap.String("sale_id", sale.ID.String()),
			zap.String("sale_number", sale.SaleNumber),
			zap.String("user_id", input.UserID.String()),
			zap.Int("items", len(sale.Items)),
			zap.String("total_amount", sale.TotalAmount.String()))
		return &CreateSaleResult{
			Sale:    sale,
			Receipt: AssembleReceipt(sale, user.Name),
		}, nil
	}

	return nil, apperror.NewConflictError("Could not allocate a unique sale number")
}

// GetSale retrieves a sale by ID. Non-admin users can only read their own
// sales.
func (s *SaleService) GetSale(ctx context.Context, requesterID uuid.UUID, isAdmin bool, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if !isAdmin && sale.UserID != requesterID {
		return nil, apperror.ErrForbidden
	}
	return sale, nil
}

// ListSales lists sales with filtering. Non-admin users are pinned to their
// own sales regardless of the requested filter.
func (s *SaleService) ListSales(ctx context.Context, requesterID uuid.UUID, isAdmin bool, params *repository.SaleFilterParams) (*pagination.PaginatedResult[repository.SaleWithSeller], error) {
	if !isAdmin {
		params.UserID = &requesterID
	}

	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// generateSaleNumber returns a short human-readable sale number. Uniqueness
// is enforced by the database index, with collisions retried by the caller.
func generateSaleNumber() string {
	return fmt.Sprintf("SALE-%s", strings.ToUpper(uuid.New().String()[:8]))
}
