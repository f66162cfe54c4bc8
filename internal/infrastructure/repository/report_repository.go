package repository

import (
	"context"
	"time"

	domainRepo "github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/money"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SalesSummary(ctx context.Context, start, end time.Time) (money.Money, int64, error) {
	var row struct {
		TotalRevenue int64
		TotalSales   int64
	}

	// SUM over bigint returns numeric in PostgreSQL, cast back
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total_amount), 0)::bigint as total_revenue,
			COUNT(*) as total_sales
		FROM sales
		WHERE date >= ? AND date < ?
	`, start, end).Scan(&row).Error

	if err != nil {
		return 0, 0, err
	}

	return money.FromCents(row.TotalRevenue), row.TotalSales, nil
}

func (r *reportRepository) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopProduct, error) {
	var results []domainRepo.TopProduct

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id as product_id,
			p.name as name,
			p.packaging_description as packaging_description,
			COALESCE(SUM(si.quantity), 0) as quantity_sold,
			COALESCE(SUM(si.total_price), 0)::bigint as revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		JOIN sales s ON s.id = si.sale_id
		WHERE s.date >= ? AND s.date < ?
		GROUP BY p.id, p.name, p.packaging_description
		ORDER BY quantity_sold DESC, revenue DESC
		LIMIT ?
	`, start, end, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
