package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// OrderStore implements the store.OrderStore interface
// using a PostgreSQL database as the storage backend.
type OrderStore struct {
	db store.DBTX
}

// NewOrderStore creates a new PostgreSQL implementation of the OrderStore
// interface.
func NewOrderStore(db store.DBTX) *OrderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &OrderStore{db: db}
}

// Ensure OrderStore implements store.OrderStore.
var _ store.OrderStore = (*OrderStore)(nil)

// WithTx implements store.OrderStore.WithTx
func (s *OrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return &OrderStore{db: tx}
}

const orderColumns = "id, user_id, book_id, quantity, total_price, status, order_date"

func scanOrder(row interface{ Scan(dest ...any) error }) (*domain.Order, error) {
	var (
		id     int64
		userID int64
		bookID int64
		order  domain.Order
	)
	if err := row.Scan(
		&id,
		&userID,
		&bookID,
		&order.Quantity,
		&order.TotalPrice,
		&order.Status,
		&order.OrderDate,
	); err != nil {
		return nil, err
	}
	order.ID = formatID(id)
	order.UserID = formatID(userID)
	order.BookID = formatID(bookID)
	return &order, nil
}

// GetAll implements store.OrderStore.GetAll
func (s *OrderStore) GetAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC, id DESC`
	return s.queryOrders(ctx, query)
}

// GetByUserID implements store.OrderStore.GetByUserID
// Orders are sorted by order date descending.
func (s *OrderStore) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	numID, ok := parseID(userID)
	if !ok {
		return []domain.Order{}, nil
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY order_date DESC, id DESC`
	return s.queryOrders(ctx, query, numID)
}

func (s *OrderStore) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "order", "query", store.ErrOrderNotFound, store.ErrDuplicate)
	}
	defer func() { _ = rows.Close() }()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "order", "query", store.ErrOrderNotFound, store.ErrDuplicate)
	}

	return orders, nil
}

// GetByID implements store.OrderStore.GetByID
// Returns store.ErrOrderNotFound if the order does not exist.
func (s *OrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	numID, ok := parseID(id)
	if !ok {
		return nil, store.ErrOrderNotFound
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(s.db.QueryRowContext(ctx, query, numID))
	if err != nil {
		return nil, mapError(err, "order", "get_by_id", store.ErrOrderNotFound, store.ErrDuplicate)
	}

	return order, nil
}

// Add implements store.OrderStore.Add
// An unparseable order date defaults to the time of creation.
func (s *OrderStore) Add(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	userID, ok := parseID(order.UserID)
	if !ok {
		return nil, fmt.Errorf("%w: bad user id %q", store.ErrInvalidEntity, order.UserID)
	}
	bookID, ok := parseID(order.BookID)
	if !ok {
		return nil, fmt.Errorf("%w: bad book id %q", store.ErrInvalidEntity, order.BookID)
	}

	orderDate := order.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	query := `
		INSERT INTO orders (user_id, book_id, quantity, total_price, status, order_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		userID,
		bookID,
		order.Quantity,
		order.TotalPrice,
		order.Status,
		orderDate,
	).Scan(&id)
	if err != nil {
		return nil, mapError(err, "order", "add", store.ErrOrderNotFound, store.ErrDuplicate)
	}

	persisted := *order
	persisted.ID = formatID(id)
	persisted.OrderDate = orderDate
	return &persisted, nil
}

// Update implements store.OrderStore.Update
// Only the status is mutable after placement. Last write wins.
func (s *OrderStore) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if !order.Status.IsValid() {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrInvalidOrderStatus)
	}

	numID, ok := parseID(order.ID)
	if !ok {
		return nil, store.ErrOrderNotFound
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, order.Status, numID)
	if err != nil {
		return nil, mapError(err, "order", "update", store.ErrOrderNotFound, store.ErrDuplicate)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, store.ErrOrderNotFound
	}

	return order, nil
}

// Paginate implements store.OrderStore.Paginate
// Fails closed to an empty page when the database is unreachable.
func (s *OrderStore) Paginate(ctx context.Context, page, pageSize int) (*store.Page[domain.Order], error) {
	log := logger.FromContext(ctx)
	page, pageSize = normalizePageArgs(page, pageSize)

	failClosed := func(err error) (*store.Page[domain.Order], error) {
		log.Warn("order pagination failed closed",
			slog.Int("page", page),
			slog.String("error", err.Error()))
		return store.EmptyPage[domain.Order](page, pageSize), nil
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return failClosed(err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return failClosed(err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]domain.Order, 0, pageSize)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		items = append(items, *order)
	}
	if err := rows.Err(); err != nil {
		return failClosed(err)
	}

	return offsetPage(items, page, pageSize, total), nil
}
