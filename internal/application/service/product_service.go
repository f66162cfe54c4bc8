package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/apperror"
	"github.com/sokoni/depot-api/pkg/money"
	"github.com/sokoni/depot-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name                 string
	PackagingDescription string
	SKU                  *string
	StockInSaleUnits     int
	PricePerSaleUnit     string
}

// UpdateProductInput represents the update product input. Stock is set
// absolutely; sales decrement it separately through the sale transaction.
type UpdateProductInput struct {
	Name                 string
	PackagingDescription string
	SKU                  *string
	StockInSaleUnits     int
	PricePerSaleUnit     string
}

// CreateProduct creates a new catalog product. The SKU is generated from the
// name and packaging when not supplied.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	price, err := s.validateProductInput(input.Name, input.StockInSaleUnits, input.PricePerSaleUnit)
	if err != nil {
		return nil, err
	}

	sku := input.SKU
	if sku == nil || *sku == "" {
		generated := generateSKU(input.Name, input.PackagingDescription)
		sku = &generated
	}

	product := &entity.Product{
		Name:                 strings.TrimSpace(input.Name),
		PackagingDescription: strings.TrimSpace(input.PackagingDescription),
		SKU:                  sku,
		StockInSaleUnits:     input.StockInSaleUnits,
		PricePerSaleUnit:     price,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates a product's catalog fields, including restocking
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	price, err := s.validateProductInput(input.Name, input.StockInSaleUnits, input.PricePerSaleUnit)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	product.Name = strings.TrimSpace(input.Name)
	product.PackagingDescription = strings.TrimSpace(input.PackagingDescription)
	if input.SKU != nil && *input.SKU != "" {
		product.SKU = input.SKU
	}
	product.StockInSaleUnits = input.StockInSaleUnits
	product.PricePerSaleUnit = price

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product that no sale refers to. Products already
// sold stay in the catalog so historical sale items keep a valid reference.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	refs, err := s.productRepo.CountSaleReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperror.NewConflictError("Product has recorded sales and cannot be deleted")
	}

	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListAvailableProducts returns every in-stock product for sale entry
func (s *ProductService) ListAvailableProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListAvailable(ctx)
}

func (s *ProductService) validateProductInput(name string, stock int, price string) (money.Money, error) {
	if strings.TrimSpace(name) == "" {
		return 0, apperror.NewValidationError("Product name is required")
	}
	if stock < 0 {
		return 0, apperror.NewValidationError("Stock cannot be negative")
	}
	parsed, err := money.Parse(price)
	if err != nil {
		return 0, apperror.NewValidationError("Invalid price: " + err.Error())
	}
	if !parsed.IsPositive() {
		return 0, apperror.NewValidationError("Price must be positive")
	}
	return parsed, nil
}

// generateSKU derives a stable-format SKU: up to four characters of the
// name, the packaging word initials and a random suffix, all uppercased.
func generateSKU(name, packaging string) string {
	var b strings.Builder

	count := 0
	for _, r := range name {
		if count == 4 {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			count++
		}
	}

	for _, word := range strings.Fields(packaging) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(unicode.ToUpper(r))
				break
			}
		}
	}

	b.WriteString("-")
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	b.WriteString(strings.ToUpper(suffix))

	return b.String()
}
