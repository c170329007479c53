package models

import (
	"errors"
	"time"
)

// SalsaSize is one of the jar sizes a product is sold in.
type SalsaSize string

const (
	Size4oz  SalsaSize = "4oz"
	Size8oz  SalsaSize = "8oz"
	Size12oz SalsaSize = "12oz"
	Size1gal SalsaSize = "1gal"
)

func (s SalsaSize) Valid() bool {
	switch s {
	case Size4oz, Size8oz, Size12oz, Size1gal:
		return true
	}
	return false
}

// CartLine is one distinct (product, size) combination in the active cart.
// A cart never holds two lines for the same pair; re-adding increments quantity.
type CartLine struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Size      SalsaSize `json:"size"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	ImageRef  string    `json:"image_ref"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ErrInvalidTransition is returned when an order status change is not
// allowed by the transition table.
var ErrInvalidTransition = errors.New("invalid order status transition")

var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	// Cancelled orders may be re-opened.
	StatusCancelled: {StatusPending},
}

func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition table allows moving
// from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s, in table order.
// Empty for terminal statuses.
func (s OrderStatus) NextStatuses() []OrderStatus {
	allowed := statusTransitions[s]
	out := make([]OrderStatus, len(allowed))
	copy(out, allowed)
	return out
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is an immutable record of a placed cart. LineItems and Total are
// snapshots taken at placement time; later catalog price changes never
// touch them.
type Order struct {
	ID        string      `json:"id"`
	LineItems []CartLine  `json:"line_items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	Customer  Customer    `json:"customer"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
