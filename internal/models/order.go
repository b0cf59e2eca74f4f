package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType distinguishes dine-in orders from takeaway orders.
type OrderType string

const (
	OrderTypeTable    OrderType = "MESA"
	OrderTypeTakeaway OrderType = "LLEVAR"
)

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusInPreparation OrderStatus = "EN_PREPARACION"
	OrderStatusDelivered     OrderStatus = "ENTREGADO"
	OrderStatusCancelled     OrderStatus = "CANCELADO"
)

// Order represents a customer order tracked by the kitchen board.
// Total is always derived from Items and recomputed on every mutation.
type Order struct {
	ID        string          `json:"id"`
	Customer  string          `json:"customer,omitempty"`
	Type      OrderType       `json:"type"`
	Table     int             `json:"table,omitempty"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// OrderItem is a line of an order. Name and Price are snapshots taken from
// the product catalog when the line is added and are never synced back.
type OrderItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal returns qty times unit price for this line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// ItemsTotal sums the subtotals of a list of order items.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Clone returns a deep copy of the order, with its own items slice.
func (o Order) Clone() Order {
	dup := o
	dup.Items = make([]OrderItem, len(o.Items))
	copy(dup.Items, o.Items)
	return dup
}
