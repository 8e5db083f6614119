package postgres

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// PostgreSQL unique violation error code.
const uniqueViolationCode = "23505"

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a duplicate email address.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// mapError converts a database error into the store error taxonomy for the
// given entity: sql.ErrNoRows becomes the entity's not-found error, unique
// violations become duplicates, and anything else is wrapped as a StoreError
// around ErrUnavailable so transient faults stay recognizable.
func mapError(err error, entity, operation string, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	if isUniqueViolation(err) {
		return duplicate
	}

	return store.NewStoreError(entity, operation, "database error", errors.Join(store.ErrUnavailable, err))
}

// parseID converts a domain string ID into the numeric surrogate key the
// primary store uses. The bool is false when the string cannot name a row.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// formatID renders a surrogate key in the domain's string representation.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
