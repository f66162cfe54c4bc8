package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/pkg/money"
	"gorm.io/gorm"
)

// Product is a finished, sellable catalog item. Stock is counted in sale
// units, the granularity described by PackagingDescription (e.g. "case of 12").
// The invariant StockInSaleUnits >= 0 holds at rest, including immediately
// after any committed sale.
type Product struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	Name                 string      `gorm:"size:255;not null;index" json:"name"`
	PackagingDescription string      `gorm:"size:255;not null" json:"packaging_description"`
	SKU                  *string     `gorm:"size:100;index" json:"sku,omitempty"`
	StockInSaleUnits     int         `gorm:"not null;default:0" json:"stock_in_sale_units"`
	PricePerSaleUnit     money.Money `gorm:"type:bigint;not null" json:"price_per_sale_unit"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// InStock reports whether at least one sale unit is available.
func (p *Product) InStock() bool {
	return p.StockInSaleUnits > 0
}
