package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
)

// DashboardStats aggregates the numbers shown on the admin dashboard.
// Revenue is a decimal sum over order totals, never a float.
type DashboardStats struct {
	TotalCustomers int             `json:"total_customers"`
	TotalBooks     int             `json:"total_books"`
	TotalOrders    int             `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	InStock        int             `json:"in_stock"`
	OutOfStock     int             `json:"out_of_stock"`
}

// StatsStore provides the aggregate queries behind the admin dashboard.
// These run against the primary store only: aggregates over the secondary
// store would require full scans for numbers the relational store computes
// in one pass.
type StatsStore interface {
	// Dashboard returns the headline counts and revenue total.
	Dashboard(ctx context.Context) (*DashboardStats, error)

	// RecentOrders returns the most recently placed orders, newest first.
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)

	// LowStockBooks returns books with stock below the threshold, lowest
	// stock first.
	LowStockBooks(ctx context.Context, threshold int) ([]domain.Book, error)
}
