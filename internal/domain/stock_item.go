package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// StockItem is one physical unit of inventory, tracked against a
// product/variant and an owning order. OrderID nil means general stock.
type StockItem struct {
	ID               uint
	PublicID         string
	ProductID        string
	LogoType         string
	Status           string
	OrderID          *string
	ClientName       string
	DeliveryDeadline time.Time
	ReallocatedFrom  string
	CreationDate     time.Time
	// Attributes carries every other field of the upstream record verbatim.
	// A move must never drop or alter them.
	Attributes json.RawMessage
}

const (
	StatusInStock            = "inStock"
	StatusAwaitingProduction = "awaitingProduction"
)

const GeneralStockLabel = "General Stock (Manual)"

// ReallocationLabel describes where a moved-in unit came from.
func ReallocationLabel(sourceOrderID *string) string {
	if sourceOrderID == nil {
		return GeneralStockLabel
	}
	return "Order #" + ShortOrderRef(*sourceOrderID) + " (Manual)"
}

// BorrowedLabel marks a replacement placeholder left behind at the
// lending order.
func BorrowedLabel(targetOrderID string) string {
	return "Borrowed for Order #" + ShortOrderRef(targetOrderID)
}

// ShortOrderRef is the display form of an order id: first 6 characters,
// uppercased. Descriptive only, never used for lookups.
func ShortOrderRef(orderID string) string {
	if len(orderID) > 6 {
		orderID = orderID[:6]
	}
	return strings.ToUpper(orderID)
}
