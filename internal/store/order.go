package store

import (
	"context"
	"database/sql"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
)

// OrderStore defines the primary-store (relational) interface for order
// persistence.
type OrderStore interface {
	// GetAll returns every order, newest first.
	GetAll(ctx context.Context) ([]domain.Order, error)

	// GetByID retrieves an order by its ID.
	// Returns ErrOrderNotFound if the order does not exist.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// GetByUserID returns a user's orders sorted by order date descending.
	GetByUserID(ctx context.Context, userID string) ([]domain.Order, error)

	// Add saves a new order and returns it with its store-assigned identity.
	Add(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// Update modifies an existing order (status changes). Last write wins.
	// Returns ErrOrderNotFound if the order does not exist.
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// Paginate returns the 1-indexed page of orders with a real total count,
	// failing closed to an empty page when the store is unreachable.
	Paginate(ctx context.Context, page, pageSize int) (*Page[domain.Order], error)

	// WithTx returns an OrderStore bound to the provided transaction.
	WithTx(tx *sql.Tx) OrderStore
}
