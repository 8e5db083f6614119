package store

import (
	"context"
	"database/sql"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
)

// UserStore defines the primary-store (relational) interface for user
// persistence. Email uniqueness is enforced here and only here.
type UserStore interface {
	// GetAll returns every user, newest first.
	GetAll(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Add saves a new user and returns them with their store-assigned identity.
	// Returns ErrEmailExists if the email is already taken.
	Add(ctx context.Context, user *domain.User) (*domain.User, error)

	// Update modifies an existing user. Last write wins.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)

	// Paginate returns the 1-indexed page of users with a real total count,
	// failing closed to an empty page when the store is unreachable.
	Paginate(ctx context.Context, page, pageSize int) (*Page[domain.User], error)

	// WithTx returns a UserStore bound to the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
