package service

import (
	"context"
	"time"

	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/apperror"
)

// topProductsLimit caps the best sellers ranking in reports.
const topProductsLimit = 5

// ReportService builds aggregate sales reports over a date range
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// GetReport aggregates revenue, sale count and best sellers for sales with
// start <= date < end.
func (s *ReportService) GetReport(ctx context.Context, start, end time.Time) (*repository.ReportData, error) {
	if !end.After(start) {
		return nil, apperror.NewValidationError("End date must be after start date")
	}

	revenue, count, err := s.reportRepo.SalesSummary(ctx, start, end)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.reportRepo.TopProducts(ctx, start, end, topProductsLimit)
	if err != nil {
		return nil, err
	}

	return &repository.ReportData{
		TotalRevenue: revenue,
		TotalSales:   count,
		TopProducts:  topProducts,
	}, nil
}
