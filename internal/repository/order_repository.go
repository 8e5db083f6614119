package repository

import (
	"context"
	"log/slog"
	"sort"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// OrderRepository is the dual-backend repository for orders.
type OrderRepository struct {
	primary store.OrderStore
	replica store.KVStore
}

// NewOrderRepository creates an OrderRepository. The replica may be nil, in
// which case every operation runs against the primary alone.
func NewOrderRepository(primary store.OrderStore, replica store.KVStore) *OrderRepository {
	return &OrderRepository{primary: primary, replica: replica}
}

// GetByID reads an order, preferring the replica and falling back to the
// primary on a miss, fault, or malformed item.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if r.replica != nil {
		if item, ok := r.replica.GetByID(ctx, id); ok {
			order, err := orderFromItem(item)
			if err == nil {
				return order, nil
			}
			logger.FromContext(ctx).Warn("replica item malformed, falling back to primary",
				slog.String("entity", "order"), slog.String("id", id),
				slog.String("error", err.Error()))
		}
	}

	order, err := r.primary.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("primary read failed, treating as absent",
			slog.String("entity", "order"), slog.String("id", id),
			slog.String("error", err.Error()))
		return nil, store.ErrOrderNotFound
	}

	return order, nil
}

// GetByUserID returns a user's order history, newest first. The primary is
// preferred here: history queries are indexed there, while the replica can
// only answer with a filtered full-table scan. The scan is the fallback when
// the primary is unreachable.
func (r *OrderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := r.primary.GetByUserID(ctx, userID)
	if err == nil {
		return orders, nil
	}

	if r.replica != nil {
		if items, ok := r.replica.ScanByAttribute(ctx, "userId", userID); ok {
			logger.FromContext(ctx).Warn("primary history read failed, serving replica scan",
				slog.String("user_id", userID), slog.String("error", err.Error()))
			replicated := coerceOrders(ctx, items)
			sort.Slice(replicated, func(i, j int) bool {
				return replicated[i].OrderDate.After(replicated[j].OrderDate)
			})
			return replicated, nil
		}
	}

	return nil, err
}

// GetPaginated pages through all orders using the replica's native cursor
// pagination, with the same protocol and fallback behavior as the book
// catalog: TotalCount nil, HasNext from the continuation key, full fallback
// to primary offset pagination on a replica fault or empty first page.
func (r *OrderRepository) GetPaginated(ctx context.Context, page, pageSize int, token string) (*store.Page[domain.Order], error) {
	page, pageSize = normalizePage(page, pageSize)

	if r.replica == nil {
		return r.primary.Paginate(ctx, page, pageSize)
	}

	start := store.DecodeCursor(token)
	items, next, ok := r.replica.GetPage(ctx, pageSize, start)
	if !ok || (start == nil && len(items) == 0) {
		return r.primary.Paginate(ctx, page, pageSize)
	}

	return &store.Page[domain.Order]{
		Items:     coerceOrders(ctx, items),
		Page:      page,
		PageSize:  pageSize,
		HasNext:   next != nil,
		HasPrev:   start != nil,
		NextToken: store.EncodeCursor(next),
	}, nil
}

// Add persists an order to the primary store, then mirrors it to the
// replica best effort.
func (r *OrderRepository) Add(ctx context.Context, order *domain.Order) (*domain.Order, store.ReplicaSync, error) {
	created, err := r.primary.Add(ctx, order)
	if err != nil {
		return nil, store.ReplicaSync{Status: store.SyncSkipped}, err
	}
	return created, r.mirror(ctx, created), nil
}

// Update modifies an order in the primary store only.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	return r.primary.Update(ctx, order)
}

// Mirror writes the order's current state to the replica.
func (r *OrderRepository) Mirror(ctx context.Context, order *domain.Order) store.ReplicaSync {
	return r.mirror(ctx, order)
}

func (r *OrderRepository) mirror(ctx context.Context, order *domain.Order) store.ReplicaSync {
	if r.replica == nil {
		return store.ReplicaSync{Status: store.SyncSkipped}
	}
	if !r.replica.Put(ctx, orderItem(order)) {
		logger.FromContext(ctx).Warn("replica write failed, stores diverged",
			slog.String("entity", "order"), slog.String("id", order.ID))
		return store.ReplicaSync{Status: store.SyncFailed}
	}
	return store.ReplicaSync{Status: store.SyncOK}
}

func coerceOrders(ctx context.Context, items []store.Item) []domain.Order {
	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		order, err := orderFromItem(item)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping malformed replica item",
				slog.String("entity", "order"), slog.String("error", err.Error()))
			continue
		}
		orders = append(orders, *order)
	}
	return orders
}
