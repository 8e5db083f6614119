package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

var errPrimaryDown = errors.New("primary store unreachable")

// fakeKV is an in-memory store.KVStore for repository tests. It serves pages
// from an ordered item slice the way the real table does, and can be flipped
// into a faulting state where every operation degrades.
type fakeKV struct {
	items   []store.Item
	fault   bool
	putFail bool

	puts         []store.Item
	getPageCalls int
	scanAllCalls int
}

func (f *fakeKV) GetByID(_ context.Context, id string) (store.Item, bool) {
	if f.fault {
		return nil, false
	}
	for _, item := range f.items {
		if item.ID() == id {
			return item, true
		}
	}
	return nil, false
}

func (f *fakeKV) ScanAll(context.Context) ([]store.Item, bool) {
	f.scanAllCalls++
	if f.fault {
		return nil, false
	}
	return append([]store.Item(nil), f.items...), true
}

func (f *fakeKV) GetPage(_ context.Context, limit int, start *store.ContinuationKey) ([]store.Item, *store.ContinuationKey, bool) {
	f.getPageCalls++
	if f.fault {
		return nil, nil, false
	}

	from := 0
	if start != nil {
		for i, item := range f.items {
			if item.ID() == start.ID {
				from = i + 1
				break
			}
		}
	}

	to := from + limit
	if to > len(f.items) {
		to = len(f.items)
	}
	page := append([]store.Item(nil), f.items[from:to]...)

	var next *store.ContinuationKey
	if to < len(f.items) && len(page) > 0 {
		next = &store.ContinuationKey{ID: page[len(page)-1].ID()}
	}
	return page, next, true
}

func (f *fakeKV) Put(_ context.Context, item store.Item) bool {
	if f.fault || f.putFail {
		return false
	}
	f.puts = append(f.puts, item)
	return true
}

func (f *fakeKV) ScanByAttribute(_ context.Context, name, value string) ([]store.Item, bool) {
	if f.fault {
		return nil, false
	}
	var matched []store.Item
	for _, item := range f.items {
		if item[name] == value {
			matched = append(matched, item)
		}
	}
	return matched, true
}

// fakeBookStore is an in-memory store.BookStore. Setting err makes every
// operation fail with it.
type fakeBookStore struct {
	books  []domain.Book
	err    error
	nextID string

	paginateCalls int
	lastPage      int
	lastPageSize  int
}

func (f *fakeBookStore) GetAll(context.Context) ([]domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Book(nil), f.books...), nil
}

func (f *fakeBookStore) GetByID(_ context.Context, id string) (*domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.books {
		if f.books[i].ID == id {
			book := f.books[i]
			return &book, nil
		}
	}
	return nil, store.ErrBookNotFound
}

func (f *fakeBookStore) Add(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *book
	created.ID = f.nextID
	f.books = append(f.books, created)
	return &created, nil
}

func (f *fakeBookStore) Update(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.books {
		if f.books[i].ID == book.ID {
			f.books[i] = *book
			updated := *book
			return &updated, nil
		}
	}
	return nil, store.ErrBookNotFound
}

func (f *fakeBookStore) Paginate(_ context.Context, page, pageSize int) (*store.Page[domain.Book], error) {
	f.paginateCalls++
	f.lastPage, f.lastPageSize = page, pageSize
	if f.err != nil {
		return store.EmptyPage[domain.Book](page, pageSize), nil
	}
	total := len(f.books)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return &store.Page[domain.Book]{
		Items:      append([]domain.Book(nil), f.books[start:end]...),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: &total,
		HasNext:    end < total,
		HasPrev:    page > 1,
	}, nil
}

func (f *fakeBookStore) WithTx(*sql.Tx) store.BookStore { return f }

// fakeOrderStore is an in-memory store.OrderStore.
type fakeOrderStore struct {
	orders []domain.Order
	err    error
	nextID string

	paginateCalls int
}

func (f *fakeOrderStore) GetAll(context.Context) ([]domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Order(nil), f.orders...), nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.orders {
		if f.orders[i].ID == id {
			order := f.orders[i]
			return &order, nil
		}
	}
	return nil, store.ErrOrderNotFound
}

func (f *fakeOrderStore) GetByUserID(_ context.Context, userID string) ([]domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []domain.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func (f *fakeOrderStore) Add(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *order
	created.ID = f.nextID
	f.orders = append(f.orders, created)
	return &created, nil
}

func (f *fakeOrderStore) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.orders {
		if f.orders[i].ID == order.ID {
			f.orders[i] = *order
			updated := *order
			return &updated, nil
		}
	}
	return nil, store.ErrOrderNotFound
}

func (f *fakeOrderStore) Paginate(_ context.Context, page, pageSize int) (*store.Page[domain.Order], error) {
	f.paginateCalls++
	if f.err != nil {
		return store.EmptyPage[domain.Order](page, pageSize), nil
	}
	total := len(f.orders)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return &store.Page[domain.Order]{
		Items:      append([]domain.Order(nil), f.orders[start:end]...),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: &total,
		HasNext:    end < total,
		HasPrev:    page > 1,
	}, nil
}

func (f *fakeOrderStore) WithTx(*sql.Tx) store.OrderStore { return f }

// fakeUserStore is an in-memory store.UserStore.
type fakeUserStore struct {
	users  []domain.User
	err    error
	nextID string

	paginateCalls int
	lastPage      int
	lastPageSize  int
}

func (f *fakeUserStore) GetAll(context.Context) ([]domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.User(nil), f.users...), nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].Email == email {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Add(_ context.Context, user *domain.User) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, store.ErrEmailExists
		}
	}
	created := *user
	created.ID = f.nextID
	f.users = append(f.users, created)
	return &created, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].ID == user.ID {
			f.users[i] = *user
			updated := *user
			return &updated, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Paginate(_ context.Context, page, pageSize int) (*store.Page[domain.User], error) {
	f.paginateCalls++
	f.lastPage, f.lastPageSize = page, pageSize
	if f.err != nil {
		return store.EmptyPage[domain.User](page, pageSize), nil
	}
	total := len(f.users)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return &store.Page[domain.User]{
		Items:      append([]domain.User(nil), f.users[start:end]...),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: &total,
		HasNext:    end < total,
		HasPrev:    page > 1,
	}, nil
}

func (f *fakeUserStore) WithTx(*sql.Tx) store.UserStore { return f }
