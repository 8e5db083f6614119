package store

import (
	"context"
	"database/sql"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
)

// BookStore defines the primary-store (relational) interface for book
// persistence. Implementations are strongly consistent and authoritative:
// identity assignment happens here.
type BookStore interface {
	// GetAll returns every book ordered by insertion recency (newest first).
	GetAll(ctx context.Context) ([]domain.Book, error)

	// GetByID retrieves a book by its ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id string) (*domain.Book, error)

	// Add saves a new book and returns it with its store-assigned identity.
	// Returns validation errors from the domain Book if data is invalid.
	Add(ctx context.Context, book *domain.Book) (*domain.Book, error)

	// Update modifies an existing book. Last write wins; there is no
	// optimistic concurrency. Returns ErrBookNotFound if the book does
	// not exist.
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)

	// Paginate returns the 1-indexed page of books with a real total count.
	// When the store is unreachable it fails closed: an empty page, not an
	// error, matching the repository fallback contract.
	Paginate(ctx context.Context, page, pageSize int) (*Page[domain.Book], error)

	// WithTx returns a BookStore bound to the provided transaction, so a
	// stock mutation can commit atomically with an order insert.
	WithTx(tx *sql.Tx) BookStore
}
