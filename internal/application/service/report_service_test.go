package service

import (
	"context"
	"testing"
	"time"

	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/apperror"
	"github.com/sokoni/depot-api/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	revenue money.Money
	sales   int64
	top     []repository.TopProduct

	gotStart, gotEnd time.Time
	gotLimit         int
}

func (r *fakeReportRepo) SalesSummary(ctx context.Context, start, end time.Time) (money.Money, int64, error) {
	r.gotStart, r.gotEnd = start, end
	return r.revenue, r.sales, nil
}

func (r *fakeReportRepo) TopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProduct, error) {
	r.gotLimit = limit
	return r.top, nil
}

func TestGetReport(t *testing.T) {
	repo := &fakeReportRepo{
		revenue: money.FromCents(123456),
		sales:   42,
		top: []repository.TopProduct{
			{Name: "Soap", QuantitySold: 30, Revenue: money.FromCents(7500)},
		},
	}
	svc := NewReportService(repo)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	report, err := svc.GetReport(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, money.FromCents(123456), report.TotalRevenue)
	assert.Equal(t, int64(42), report.TotalSales)
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, "Soap", report.TopProducts[0].Name)

	assert.Equal(t, start, repo.gotStart)
	assert.Equal(t, end, repo.gotEnd)
	assert.Equal(t, topProductsLimit, repo.gotLimit)
}

func TestGetReportRejectsInvertedRange(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{})

	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetReport(context.Background(), start, end)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	_, err = svc.GetReport(context.Background(), start, start)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestGetDashboardStats(t *testing.T) {
	reportRepo := &fakeReportRepo{revenue: money.FromCents(5000), sales: 7}
	productRepo := newFakeProductRepo(
		testProduct("Soap", 2, 250),
		testProduct("Rice", 50, 1999),
	)
	svc := NewDashboardService(reportRepo, productRepo, 5)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, money.FromCents(5000), stats.TodayRevenue)
	assert.Equal(t, int64(7), stats.TodaySales)
	require.Len(t, stats.LowStockProducts, 1)
	assert.Equal(t, "Soap", stats.LowStockProducts[0].Name)

	// The summary window is today from midnight, local time
	assert.Equal(t, 24*time.Hour, reportRepo.gotEnd.Sub(reportRepo.gotStart))
	assert.Equal(t, 0, reportRepo.gotStart.Hour())
}
