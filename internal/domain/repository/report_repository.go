package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/pkg/money"
)

// TopProduct is one row of the best sellers ranking.
type TopProduct struct {
	ProductID            uuid.UUID   `json:"product_id"`
	Name                 string      `json:"name"`
	PackagingDescription string      `json:"packaging_description"`
	QuantitySold         int64       `json:"quantity_sold"`
	Revenue              money.Money `json:"revenue"`
}

// ReportData aggregates sales figures over a date range.
type ReportData struct {
	TotalRevenue money.Money  `json:"total_revenue"`
	TotalSales   int64        `json:"total_sales"`
	TopProducts  []TopProduct `json:"top_products"`
}

// ReportRepository runs aggregate queries over the sales ledger.
type ReportRepository interface {
	// SalesSummary returns revenue and sale count for sales with
	// start <= date < end.
	SalesSummary(ctx context.Context, start, end time.Time) (money.Money, int64, error)
	// TopProducts ranks products by quantity sold over the range.
	TopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProduct, error)
}
