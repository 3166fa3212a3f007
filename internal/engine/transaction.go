package engine

import (
	"math"

	"github.com/dvloznov/shopstream/internal/dataset"
	"github.com/dvloznov/shopstream/internal/inventory"
)

// buildTransaction tries to turn a converted session's cart into a
// transaction. Each cart line is reserved against the ledger in cart
// insertion order; lines that fail reservation are dropped, so a partially
// stocked cart still yields a transaction with the lines that fit. If no
// line reserves, there is no transaction and ok is false.
func buildTransaction(draw *sessionDraw, ledger *inventory.Ledger) (*dataset.Transaction, bool) {
	session := draw.session

	var items []dataset.TransactionItem
	for _, productID := range session.CartOrder() {
		line := session.CartContents[productID]
		if !ledger.Reserve(productID, line.Quantity) {
			continue
		}
		items = append(items, dataset.TransactionItem{
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
			Subtotal:  round2(float64(line.Quantity) * line.Price),
		})
	}
	if len(items) == 0 {
		return nil, false
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Subtotal
	}
	subtotal = round2(subtotal)
	discount := round2(subtotal * draw.discount)

	return &dataset.Transaction{
		TransactionID: draw.transactionID,
		SessionID:     session.SessionID,
		UserID:        session.UserID,
		Timestamp:     session.StartTime,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         round2(subtotal - discount),
		PaymentMethod: draw.paymentMethod,
		Status:        "completed",
	}, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
