package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/service/auth"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

var errStoreDown = errors.New("store unreachable")

// passThroughTx substitutes the real transaction runner: it invokes the
// function with a nil *sql.Tx, which the fakes below ignore.
func passThroughTx(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

type fakeUserRepo struct {
	users  map[string]*domain.User // keyed by id
	emails map[string]*domain.User // keyed by email
	addErr error
	nextID string
	sync   store.SyncStatus

	added []*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  map[string]*domain.User{},
		emails: map[string]*domain.User{},
		nextID: "1",
		sync:   store.SyncOK,
	}
}

func (f *fakeUserRepo) put(user domain.User) {
	f.users[user.ID] = &user
	f.emails[user.Email] = &user
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := f.emails[email]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserRepo) Add(_ context.Context, user *domain.User) (*domain.User, store.ReplicaSync, error) {
	if f.addErr != nil {
		return nil, store.ReplicaSync{Status: store.SyncSkipped}, f.addErr
	}
	if _, taken := f.emails[user.Email]; taken {
		return nil, store.ReplicaSync{Status: store.SyncSkipped}, store.ErrEmailExists
	}
	created := *user
	created.ID = f.nextID
	f.put(created)
	f.added = append(f.added, &created)
	return &created, store.ReplicaSync{Status: f.sync}, nil
}

type fakeBookRepo struct {
	books     map[string]*domain.Book
	mirrored  []*domain.Book
	getErr    error
	mirrorRes store.SyncStatus
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[string]*domain.Book{}, mirrorRes: store.SyncOK}
}

func (f *fakeBookRepo) GetByID(_ context.Context, id string) (*domain.Book, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if book, ok := f.books[id]; ok {
		copied := *book
		return &copied, nil
	}
	return nil, store.ErrBookNotFound
}

func (f *fakeBookRepo) Mirror(_ context.Context, book *domain.Book) store.ReplicaSync {
	copied := *book
	f.mirrored = append(f.mirrored, &copied)
	return store.ReplicaSync{Status: f.mirrorRes}
}

type fakeOrderRepo struct {
	orders   map[string]*domain.Order
	byUser   map[string][]domain.Order
	mirrored []*domain.Order
	userErr  error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}, byUser: map[string][]domain.Order{}}
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if order, ok := f.orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, store.ErrOrderNotFound
}

func (f *fakeOrderRepo) GetByUserID(_ context.Context, userID string) ([]domain.Order, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.byUser[userID], nil
}

func (f *fakeOrderRepo) Mirror(_ context.Context, order *domain.Order) store.ReplicaSync {
	copied := *order
	f.mirrored = append(f.mirrored, &copied)
	return store.ReplicaSync{Status: store.SyncOK}
}

type sentNotification struct {
	email   string
	message string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Send(_ context.Context, email, message string) {
	f.sent = append(f.sent, sentNotification{email: email, message: message})
}

// fakeTokenIssuer is a canned auth.JWTService.
type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) GenerateToken(context.Context, *domain.User) (string, error) {
	return f.token, f.err
}

func (f *fakeTokenIssuer) ValidateToken(context.Context, string) (*auth.Claims, error) {
	panic("not used in these tests")
}

// fakeBookStore is an in-memory primary store.BookStore for the placement
// transaction path. WithTx returns the same instance; passThroughTx never
// hands it a live transaction.
type fakeBookStore struct {
	books  map[string]*domain.Book
	getErr error
	updErr error

	updates []*domain.Book
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: map[string]*domain.Book{}}
}

func (f *fakeBookStore) GetAll(context.Context) ([]domain.Book, error) { return nil, nil }

func (f *fakeBookStore) GetByID(_ context.Context, id string) (*domain.Book, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if book, ok := f.books[id]; ok {
		copied := *book
		return &copied, nil
	}
	return nil, store.ErrBookNotFound
}

func (f *fakeBookStore) Add(_ context.Context, book *domain.Book) (*domain.Book, error) {
	return book, nil
}

func (f *fakeBookStore) Update(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if f.updErr != nil {
		return nil, f.updErr
	}
	copied := *book
	f.books[book.ID] = &copied
	f.updates = append(f.updates, &copied)
	updated := copied
	return &updated, nil
}

func (f *fakeBookStore) Paginate(_ context.Context, page, pageSize int) (*store.Page[domain.Book], error) {
	return store.EmptyPage[domain.Book](page, pageSize), nil
}

func (f *fakeBookStore) WithTx(*sql.Tx) store.BookStore { return f }

type fakeOrderStore struct {
	addErr error
	nextID string
	added  []*domain.Order
}

func (f *fakeOrderStore) GetAll(context.Context) ([]domain.Order, error) { return nil, nil }

func (f *fakeOrderStore) GetByID(context.Context, string) (*domain.Order, error) {
	return nil, store.ErrOrderNotFound
}

func (f *fakeOrderStore) GetByUserID(context.Context, string) ([]domain.Order, error) {
	return nil, nil
}

func (f *fakeOrderStore) Add(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	created := *order
	created.ID = f.nextID
	f.added = append(f.added, &created)
	result := created
	return &result, nil
}

func (f *fakeOrderStore) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	return order, nil
}

func (f *fakeOrderStore) Paginate(_ context.Context, page, pageSize int) (*store.Page[domain.Order], error) {
	return store.EmptyPage[domain.Order](page, pageSize), nil
}

func (f *fakeOrderStore) WithTx(*sql.Tx) store.OrderStore { return f }

// fakeStatsStore is a canned store.StatsStore.
type fakeStatsStore struct {
	stats    *store.DashboardStats
	recent   []domain.Order
	lowStock []domain.Book
	err      error
}

func (f *fakeStatsStore) Dashboard(context.Context) (*store.DashboardStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func (f *fakeStatsStore) RecentOrders(context.Context, int) ([]domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recent, nil
}

func (f *fakeStatsStore) LowStockBooks(context.Context, int) ([]domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lowStock, nil
}
