package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/notify"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// BookRepository is the catalog surface OrderService consumes: dual reads
// plus the explicit replica refresh after a stock mutation commits.
type BookRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	Mirror(ctx context.Context, book *domain.Book) store.ReplicaSync
}

// OrderRepository is the order surface OrderService consumes.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Order, error)
	Mirror(ctx context.Context, order *domain.Order) store.ReplicaSync
}

// UserReader resolves the recipient of an order notification.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// OrderService places orders. An order is always for quantity one of a
// single book; the insert and the stock decrement commit in one primary
// transaction, and the replicas are refreshed best effort afterwards.
type OrderService struct {
	db         *sql.DB
	bookStore  store.BookStore
	orderStore store.OrderStore
	books      BookRepository
	orders     OrderRepository
	users      UserReader
	notifier   notify.Notifier

	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewOrderService creates an OrderService. bookStore and orderStore are the
// primary adapters used inside the placement transaction; books and orders
// are the dual repositories used for reads and replica refreshes.
func NewOrderService(
	db *sql.DB,
	bookStore store.BookStore,
	orderStore store.OrderStore,
	books BookRepository,
	orders OrderRepository,
	users UserReader,
	notifier notify.Notifier,
) *OrderService {
	return &OrderService{
		db:         db,
		bookStore:  bookStore,
		orderStore: orderStore,
		books:      books,
		orders:     orders,
		users:      users,
		notifier:   notifier,
		runTx:      store.RunInTransaction,
	}
}

// PlaceOrder purchases one copy of the book for the user.
//
// The pre-check against the dual read gives fast feedback on missing or
// sold-out books, but the decision that counts happens inside the
// transaction against the primary store's row: two concurrent orders for
// the last copy cannot both commit. A failed placement leaves no order row
// and does not touch stock; notification fires exactly once, only after
// the transaction commits.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, bookID string) (*domain.Order, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.Stock < 1 {
		return nil, fmt.Errorf("%w: %s", domain.ErrOutOfStock, book.Title)
	}

	var created *domain.Order
	var updated *domain.Book

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txBooks := s.bookStore.WithTx(tx)

		current, err := txBooks.GetByID(ctx, bookID)
		if err != nil {
			return err
		}
		if current.Stock < 1 {
			return fmt.Errorf("%w: %s", domain.ErrOutOfStock, current.Title)
		}

		order, err := domain.NewOrder(userID, bookID, 1, current.Price)
		if err != nil {
			return err
		}

		created, err = s.orderStore.WithTx(tx).Add(ctx, order)
		if err != nil {
			return err
		}

		current.Stock--
		updated, err = txBooks.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.orders.Mirror(ctx, created)
	s.books.Mirror(ctx, updated)
	s.notifyPlaced(ctx, userID, updated.Title)

	return created, nil
}

// GetOrder returns the user's own order. An order that exists but belongs
// to someone else reads as not found, so order ids do not leak.
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, store.ErrOrderNotFound
	}
	return order, nil
}

// History returns the user's orders, newest first.
func (s *OrderService) History(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.GetByUserID(ctx, userID)
}

func (s *OrderService) notifyPlaced(ctx context.Context, userID, bookTitle string) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("order placed but notification recipient unresolved",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return
	}
	s.notifier.Send(ctx, user.Email, fmt.Sprintf("Order placed for %s", bookTitle))
}
