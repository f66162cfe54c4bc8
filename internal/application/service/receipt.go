package service

import (
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/pkg/printer"
)

// receiptDateLayout renders sale timestamps as day/month/year hour:minute.
const receiptDateLayout = "02/01/2006 15:04"

// AssembleReceipt builds a receipt from a committed sale. Every amount and
// name is read from the sale's own snapshot rows, never from the live
// catalog, so the receipt reflects the sale as it happened. Pure function.
func AssembleReceipt(sale *entity.Sale, sellerName string) *entity.Receipt {
	receipt := &entity.Receipt{
		SaleNumber:  sale.SaleNumber,
		Date:        sale.Date.Format(receiptDateLayout),
		SellerName:  sellerName,
		TotalAmount: sale.TotalAmount,
		Items:       make([]entity.ReceiptItem, 0, len(sale.Items)),
	}

	for _, item := range sale.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			ProductName:          item.Product.Name,
			PackagingDescription: item.Product.PackagingDescription,
			Quantity:             item.Quantity,
			UnitPrice:            item.UnitPrice,
			TotalPrice:           item.TotalPrice,
		})
	}

	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, storeName string, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(storeName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Sale:", r.SaleNumber).
		KeyValue("Date:", r.Date).
		KeyValue("Seller:", r.SellerName)

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.ProductName, item.TotalPrice.String())
		if item.PackagingDescription != "" {
			doc.TextF("  %s", item.PackagingDescription)
		}
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", item.UnitPrice.String())
		}
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", r.TotalAmount.String()).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your business!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
