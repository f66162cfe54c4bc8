package repository

import (
	"fmt"

	"github.com/sokoni/depot-api/internal/domain/enum"
	"github.com/sokoni/depot-api/pkg/pagination"
	"gorm.io/gorm"
)

// paginate runs the count-then-fetch sequence shared by every listing
// endpoint. base must build a fresh query on each call so the count and the
// page fetch do not share builder state.
func paginate[T any](base func() *gorm.DB, order string, params *pagination.PaginationParams) ([]T, int64, error) {
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	var items []T
	err := base().
		Order(order).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// orderExpr builds an ORDER BY expression with an id tie-break so pages stay
// stable when many rows share the sort key.
func orderExpr(table, column string, order enum.SortOrder) string {
	return fmt.Sprintf("%s.%s %s, %s.id ASC", table, column, order, table)
}
