package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPrice is returned when a monetary amount is negative.
	ErrInvalidPrice = errors.New("price cannot be negative")

	// ErrInvalidStock is returned when a stock count is negative.
	ErrInvalidStock = errors.New("stock cannot be negative")

	// ErrInvalidQuantity is returned when an order quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidRole is returned when a user role is not one of the known roles.
	ErrInvalidRole = errors.New("invalid user role")

	// ErrInvalidOrderStatus is returned when an order status is not recognized.
	ErrInvalidOrderStatus = errors.New("invalid order status")

	// ErrOutOfStock is returned when an order is placed for a book with no stock.
	ErrOutOfStock = errors.New("book is out of stock")
)
