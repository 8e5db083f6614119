package postgres

import (
	"context"
	"fmt"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// StatsStore implements the store.StatsStore interface with aggregate SQL
// over the primary store.
type StatsStore struct {
	db store.DBTX
}

// NewStatsStore creates a new PostgreSQL implementation of the StatsStore
// interface.
func NewStatsStore(db store.DBTX) *StatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &StatsStore{db: db}
}

// Ensure StatsStore implements store.StatsStore.
var _ store.StatsStore = (*StatsStore)(nil)

// Dashboard implements store.StatsStore.Dashboard
func (s *StatsStore) Dashboard(ctx context.Context) (*store.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'customer'),
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(total_price), 0) FROM orders),
			(SELECT COUNT(*) FROM books WHERE stock > 0),
			(SELECT COUNT(*) FROM books WHERE stock = 0)
	`

	var stats store.DashboardStats
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalCustomers,
		&stats.TotalBooks,
		&stats.TotalOrders,
		&stats.TotalRevenue,
		&stats.InStock,
		&stats.OutOfStock,
	)
	if err != nil {
		return nil, mapError(err, "stats", "dashboard", store.ErrNotFound, store.ErrDuplicate)
	}

	return &stats, nil
}

// RecentOrders implements store.StatsStore.RecentOrders
func (s *StatsStore) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit < 1 {
		limit = 10
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC, id DESC LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, mapError(err, "stats", "recent_orders", store.ErrNotFound, store.ErrDuplicate)
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
		return nil, mapError(err, "stats", "recent_orders", store.ErrNotFound, store.ErrDuplicate)
	}

	return orders, nil
}

// LowStockBooks implements store.StatsStore.LowStockBooks
func (s *StatsStore) LowStockBooks(ctx context.Context, threshold int) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE stock < $1 ORDER BY stock ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, threshold)
	if err != nil {
		return nil, mapError(err, "stats", "low_stock", store.ErrNotFound, store.ErrDuplicate)
	}
	defer func() { _ = rows.Close() }()

	var books []domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "stats", "low_stock", store.ErrNotFound, store.ErrDuplicate)
	}

	return books, nil
}
