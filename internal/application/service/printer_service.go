package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/config"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/apperror"
	"github.com/sokoni/depot-api/pkg/money"
	"github.com/sokoni/depot-api/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService handles receipt assembly and thermal printing.
type PrinterService struct {
	printer  printer.Printer
	saleRepo repository.SaleRepository
	cfg      *config.PrinterConfig
	logger   *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	cfg *config.PrinterConfig,
	logger *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:  p,
		saleRepo: saleRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.cfg.Type != "none" && s.cfg.Type != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.cfg.Type,
	}
}

// TestPrint sends a test page to the printer. The receipt is returned so the
// handler can show it as JSON when no printer is configured.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		SaleNumber:  "TEST-0001",
		Date:        time.Now().Format(receiptDateLayout),
		SellerName:  "System",
		TotalAmount: money.FromCents(3000),
		Items: []entity.ReceiptItem{
			{ProductName: "Test Item 1", Quantity: 1, UnitPrice: money.FromCents(1000), TotalPrice: money.FromCents(1000)},
			{ProductName: "Test Item 2", Quantity: 2, UnitPrice: money.FromCents(1000), TotalPrice: money.FromCents(2000)},
		},
	}

	data := FormatReceipt(receipt, s.cfg.StoreName, s.cfg.Width)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintSaleReceipt assembles a sale's receipt and sends it to the printer.
// Non-admin users can only print receipts for their own sales. The receipt
// is returned even when printing fails so the caller can still render it.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, requesterID uuid.UUID, isAdmin bool, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if !isAdmin && sale.UserID != requesterID {
		return nil, apperror.ErrForbidden
	}

	receipt := AssembleReceipt(sale, sale.User.Name)

	data := FormatReceipt(receipt, s.cfg.StoreName, s.cfg.Width)
	if err := s.printer.Print(data); err != nil {
		s.logger.Error("printer error",
			zap.String("sale_id", saleID.String()),
			zap.Error(err))
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}
