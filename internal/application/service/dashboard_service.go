package service

import (
	"context"
	"time"

	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/money"
)

// DashboardService provides the admin overview: today's trading figures and
// products running low.
type DashboardService struct {
	reportRepo        repository.ReportRepository
	productRepo       repository.ProductRepository
	lowStockThreshold int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	lowStockThreshold int,
) *DashboardService {
	return &DashboardService{
		reportRepo:        reportRepo,
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TodayRevenue     money.Money      `json:"today_revenue"`
	TodaySales       int64            `json:"today_sales"`
	LowStockProducts []entity.Product `json:"low_stock_products"`
}

// GetDashboardStats returns today's sales summary and low stock products
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	revenue, count, err := s.reportRepo.SalesSummary(ctx, start, end)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.ListLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TodayRevenue:     revenue,
		TodaySales:       count,
		LowStockProducts: lowStock,
	}, nil
}
