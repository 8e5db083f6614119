package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the lifecycle states of an order. Only
// OrderStatusPlaced is produced by this service; the other states are set by
// external fulfillment tooling writing to the primary store.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusFulfilled OrderStatus = "Fulfilled"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// IsValid reports whether the status is one of the known order states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a purchase of a single book by a user.
//
// An order references exactly one Book and one User by ID. There is no
// cascading delete: removal of a referenced book or user is not guarded
// against here.
type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	BookID     string          `json:"book_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     OrderStatus     `json:"status"`
	OrderDate  time.Time       `json:"order_date"`
}

// NewOrder creates a Placed order for the given book and validates it.
// The ID is left empty; the primary store assigns identity on create.
func NewOrder(userID, bookID string, quantity int, totalPrice decimal.Decimal) (*Order, error) {
	order := &Order{
		UserID:     userID,
		BookID:     bookID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		Status:     OrderStatusPlaced,
		OrderDate:  time.Now().UTC(),
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate checks if the Order has valid data.
// Returns an error if any field fails validation.
func (o *Order) Validate() error {
	if o.UserID == "" {
		return fmt.Errorf("%w: order user ID cannot be empty", ErrValidation)
	}

	if o.BookID == "" {
		return fmt.Errorf("%w: order book ID cannot be empty", ErrValidation)
	}

	if o.Quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, o.Quantity)
	}

	if o.TotalPrice.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidPrice, o.TotalPrice)
	}

	if !o.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, o.Status)
	}

	return nil
}
