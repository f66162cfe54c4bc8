package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	domainRepo "github.com/sokoni/depot-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// saleTx issues statements against one open database transaction.
type saleTx struct {
	tx *gorm.DB
}

func (t *saleTx) LockProduct(id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (t *saleTx) DecrementStock(id uuid.UUID, quantity int) (bool, error) {
	result := t.tx.Model(&entity.Product{}).
		Where("id = ? AND stock_in_sale_units >= ?", id, quantity).
		Update("stock_in_sale_units", gorm.Expr("stock_in_sale_units - ?", quantity))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (t *saleTx) InsertSale(sale *entity.Sale) error {
	err := t.tx.Create(sale).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateSaleNumber
	}
	return err
}

func (t *saleTx) InsertSaleItems(items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	return t.tx.Create(&items).Error
}

func (r *saleRepository) Transaction(ctx context.Context, fn func(tx domainRepo.SaleTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&saleTx{tx: tx})
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Items").
		Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]domainRepo.SaleWithSeller, int64, error) {
	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&entity.Sale{}).
			Select("sales.*, users.name AS seller_name, "+
				"(SELECT COUNT(*) FROM sale_items WHERE sale_items.sale_id = sales.id) AS items_count").
			Joins("JOIN users ON users.id = sales.user_id")

		if params.UserID != nil {
			query = query.Where("sales.user_id = ?", *params.UserID)
		}

		if params.Search != "" {
			pattern := "%" + params.Search + "%"
			query = query.Where("sales.sale_number ILIKE ? OR users.name ILIKE ?", pattern, pattern)
		}

		if start, end, ok := params.Date.Bounds(time.Now()); ok {
			query = query.Where("sales.date >= ? AND sales.date < ?", start, end)
		}

		return query
	}

	order := orderExpr("sales", params.SortBy.Column(), params.SortOrder)
	return paginate[domainRepo.SaleWithSeller](base, order, params.Pagination)
}
