package service

import (
	"strconv"

	"github.com/chekhub/chek-api/internal/config"
	"github.com/chekhub/chek-api/internal/domain/entity"
	"github.com/chekhub/chek-api/pkg/money"
	"github.com/chekhub/chek-api/pkg/receipttext"
)

// Totals labels are part of the fixed receipt layout.
const (
	totalLabel = "СУМА"
	restLabel  = "Решта"

	// itemTotalWidth is the column reserved for a line total on an item row.
	itemTotalWidth = 10
)

// FormatReceiptText renders a receipt into a fixed-width text block:
//
//	           ФОП Owner Name
//	========================================
//	2 x 100.00
//	Product1                          200.00
//	----------------------------------------
//	1 x 50.00
//	Product2                           50.00
//	========================================
//	СУМА                              250.00
//	Готівка                           250.00
//	Решта                               0.00
//	========================================
//	            01.09.2026 12:00
//	          Дякуємо за покупку!
//
// Rendering the same receipt twice at the same width yields identical bytes.
// A width too small for the content overflows rather than truncates.
func FormatReceiptText(receipt *entity.Receipt, ownerName string, lineWidth int, cfg *config.ReceiptConfig) string {
	doc := receipttext.NewDocument(lineWidth)

	doc.Center(cfg.OrgMarker + " " + ownerName)
	doc.Separator('=')

	for i, item := range receipt.Items {
		doc.Left(formatQuantity(item.Quantity) + " x " + money.Format(item.Price))
		doc.Columns(item.Name, money.Format(item.Total), itemTotalWidth)
		if i < len(receipt.Items)-1 {
			doc.Separator('-')
		}
	}

	doc.Separator('=')
	doc.KeyValue(totalLabel, money.Format(receipt.Total))
	doc.KeyValue(cfg.PaymentLabel(receipt.PaymentType.String()), money.Format(receipt.PaymentAmount))
	doc.KeyValue(restLabel, money.Format(receipt.Rest))
	doc.Separator('=')
	doc.Center(receipt.CreatedAt.Format("02.01.2006 15:04"))
	doc.Center(cfg.FooterMessage)

	return doc.String()
}

// formatQuantity renders a quantity with the fewest digits that round-trip,
// so whole quantities print as "2" and fractional ones as "1.5".
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
