package service

import (
	"context"
	"fmt"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

const (
	lowStockThreshold = 5
	recentOrdersLimit = 5
)

// Dashboard is the admin overview: headline aggregates plus the short lists
// shown next to them.
type Dashboard struct {
	Stats        *store.DashboardStats `json:"stats"`
	RecentOrders []domain.Order        `json:"recent_orders"`
	LowStock     []domain.Book         `json:"low_stock"`
}

// AdminService serves the admin dashboard from the primary store's
// aggregate queries.
type AdminService struct {
	stats store.StatsStore
}

// NewAdminService creates an AdminService.
func NewAdminService(stats store.StatsStore) *AdminService {
	return &AdminService{stats: stats}
}

// Dashboard assembles the admin overview.
func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	recent, err := s.stats.RecentOrders(ctx, recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	lowStock, err := s.stats.LowStockBooks(ctx, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to load low-stock books: %w", err)
	}

	return &Dashboard{Stats: stats, RecentOrders: recent, LowStock: lowStock}, nil
}
