package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/pkg/money"
	"gorm.io/gorm"
)

// Sale is an immutable ledger entry for a completed transaction. Sales are
// append-only: once committed, neither the sale nor its items are ever
// updated or deleted, and TotalAmount always equals the exact sum of the
// items' TotalPrice.
type Sale struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleNumber  string      `gorm:"size:100;uniqueIndex;not null" json:"sale_number"`
	TotalAmount money.Money `gorm:"type:bigint;not null" json:"total_amount"`
	Date        time.Time   `gorm:"not null;index" json:"date"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relationships
	User  User       `gorm:"foreignKey:UserID" json:"-"`
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one line of a sale. UnitPrice is the product's price at the
// moment of sale, copied into the row and never re-read from the catalog;
// later price changes leave committed sale items untouched.
type SaleItem struct {
	ID         uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	SaleID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int         `gorm:"not null" json:"quantity"`
	UnitPrice  money.Money `gorm:"type:bigint;not null" json:"unit_price"`
	TotalPrice money.Money `gorm:"type:bigint;not null" json:"total_price"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// SaleLine is a requested (product, quantity) pair in a sale being created.
type SaleLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// ComputeSaleItems snapshots each product's current price into a sale item
// and returns the items together with the exact sale total. Pure function:
// quantities must already be validated and stock already reserved by the
// caller.
func ComputeSaleItems(lines []SaleLine, products map[uuid.UUID]*Product) ([]SaleItem, money.Money) {
	items := make([]SaleItem, 0, len(lines))
	var total money.Money

	for _, line := range lines {
		product := products[line.ProductID]
		lineTotal := product.PricePerSaleUnit.MulInt(line.Quantity)
		total = total.Add(lineTotal)

		items = append(items, SaleItem{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  product.PricePerSaleUnit,
			TotalPrice: lineTotal,
			Product:    *product,
		})
	}

	return items, total
}
