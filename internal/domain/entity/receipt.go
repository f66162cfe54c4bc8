package entity

import "github.com/sokoni/depot-api/pkg/money"

// ReceiptItem is a single line on a receipt.
type ReceiptItem struct {
	ProductName          string      `json:"product_name"`
	PackagingDescription string      `json:"packaging_description"`
	Quantity             int         `json:"quantity"`
	UnitPrice            money.Money `json:"unit_price"`
	TotalPrice           money.Money `json:"total_price"`
}

// Receipt is a read-only projection of a committed sale, ready for display
// or printing. It is not a database entity: it is assembled from sale data
// after commit and never written back.
type Receipt struct {
	SaleNumber  string        `json:"sale_number"`
	Date        string        `json:"date"`
	SellerName  string        `json:"seller_name"`
	Items       []ReceiptItem `json:"items"`
	TotalAmount money.Money   `json:"total_amount"`
}
