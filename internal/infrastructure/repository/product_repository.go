package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/enum"
	domainRepo "github.com/sokoni/depot-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&entity.Product{})

		if params.Search != "" {
			pattern := "%" + params.Search + "%"
			query = query.Where("name ILIKE ? OR packaging_description ILIKE ? OR sku ILIKE ?",
				pattern, pattern, pattern)
		}

		switch params.Stock {
		case enum.StockInStock:
			query = query.Where("stock_in_sale_units > 0")
		case enum.StockOutOfStock:
			query = query.Where("stock_in_sale_units = 0")
		}

		return query
	}

	order := orderExpr("products", params.SortBy.Column(), params.SortOrder)
	return paginate[entity.Product](base, order, params.Pagination)
}

func (r *productRepository) ListAvailable(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("stock_in_sale_units > 0").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) ListLowStock(ctx context.Context, threshold int) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("stock_in_sale_units <= ?", threshold).
		Order("stock_in_sale_units ASC, name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) CountSaleReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SaleItem{}).
		Where("product_id = ?", id).
		Count(&count).Error
	return count, err
}

// DecrementStock decrements stock only while sufficient quantity exists.
// Uses: UPDATE products SET stock = stock - n WHERE id = ? AND stock >= n
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ? AND stock_in_sale_units >= ?", id, quantity).
		Update("stock_in_sale_units", gorm.Expr("stock_in_sale_units - ?", quantity))

	if result.Error != nil {
		return false, result.Error
	}

	// No rows affected means insufficient stock
	return result.RowsAffected > 0, nil
}
