package models

import (
	"math"
	"time"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
// Only pending orders move, and only to a terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderPending && (next == OrderCompleted || next == OrderCancelled)
}

// OrderLine is one entry of an order
type OrderLine struct {
	ItemID   string  `json:"item_id" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1,max=999"`
	Name     string  `json:"name" validate:"required,max=200"`
	Price    float64 `json:"price" validate:"gte=0"`
	Size     string  `json:"size,omitempty" validate:"max=50"`
}

// Order is a placed customer order
type Order struct {
	ID           string      `json:"id"`
	Items        []OrderLine `json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	CustomerName string      `json:"customer_name,omitempty"`
	TableNumber  string      `json:"table_number,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// LinesTotal sums price x quantity over lines, rounded to cents
func LinesTotal(lines []OrderLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return math.Round(total*100) / 100
}

// CreateOrderRequest is the request body for placing an order
type CreateOrderRequest struct {
	Items        []OrderLine `json:"items" validate:"required,min=1,max=100,dive"`
	Total        *float64    `json:"total,omitempty" validate:"omitempty,gte=0"`
	CustomerName string      `json:"customer_name" validate:"max=100"`
	TableNumber  string      `json:"table_number" validate:"max=20"`
	Notes        string      `json:"notes" validate:"max=500"`
}

// UpdateOrderRequest is the request body for changing an order's status
type UpdateOrderRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending completed cancelled"`
}
