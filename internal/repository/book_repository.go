package repository

import (
	"context"
	"log/slog"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// BookRepository is the dual-backend repository for the book catalog.
type BookRepository struct {
	primary store.BookStore
	replica store.KVStore
}

// NewBookRepository creates a BookRepository. The replica may be nil, in
// which case every operation runs against the primary alone.
func NewBookRepository(primary store.BookStore, replica store.KVStore) *BookRepository {
	return &BookRepository{primary: primary, replica: replica}
}

// GetByID reads a book, preferring the replica. A replica miss, fault, or
// malformed item falls back to the primary; a primary fault after the
// fallback is indistinguishable from a miss.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	if r.replica != nil {
		if item, ok := r.replica.GetByID(ctx, id); ok {
			book, err := bookFromItem(item)
			if err == nil {
				return book, nil
			}
			logger.FromContext(ctx).Warn("replica item malformed, falling back to primary",
				slog.String("entity", "book"), slog.String("id", id),
				slog.String("error", err.Error()))
		}
	}

	book, err := r.primary.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		logger.FromContext(ctx).Warn("primary read failed, treating as absent",
			slog.String("entity", "book"), slog.String("id", id),
			slog.String("error", err.Error()))
		return nil, store.ErrBookNotFound
	}

	return book, nil
}

// GetAll returns the whole catalog, preferring the replica. An empty or
// faulted replica scan falls back to the primary.
func (r *BookRepository) GetAll(ctx context.Context) ([]domain.Book, error) {
	if r.replica != nil {
		if items, ok := r.replica.ScanAll(ctx); ok && len(items) > 0 {
			sortItemsByIDDesc(items)
			return coerceBooks(ctx, items), nil
		}
	}
	return r.primary.GetAll(ctx)
}

// GetPaginated pages through the catalog using the replica's native cursor
// pagination. The token is an opaque continuation cursor; page and pageSize
// are carried so a fallback to the primary's offset pagination lands on the
// same page.
//
// Under the cursor protocol TotalCount is nil and HasNext is derived from
// the presence of a continuation key. An empty first page or any replica
// fault triggers a full fallback to the primary at the same page/pageSize.
func (r *BookRepository) GetPaginated(ctx context.Context, page, pageSize int, token string) (*store.Page[domain.Book], error) {
	page, pageSize = normalizePage(page, pageSize)

	if r.replica == nil {
		return r.primary.Paginate(ctx, page, pageSize)
	}

	start := store.DecodeCursor(token)
	items, next, ok := r.replica.GetPage(ctx, pageSize, start)
	if !ok || (start == nil && len(items) == 0) {
		return r.primary.Paginate(ctx, page, pageSize)
	}

	return &store.Page[domain.Book]{
		Items:     coerceBooks(ctx, items),
		Page:      page,
		PageSize:  pageSize,
		HasNext:   next != nil,
		HasPrev:   start != nil,
		NextToken: store.EncodeCursor(next),
	}, nil
}

// Add persists a book to the primary store, which assigns its identity, then
// mirrors it to the replica. The mirror is best effort: its outcome is
// reported in the ReplicaSync result and never fails the create.
func (r *BookRepository) Add(ctx context.Context, book *domain.Book) (*domain.Book, store.ReplicaSync, error) {
	created, err := r.primary.Add(ctx, book)
	if err != nil {
		return nil, store.ReplicaSync{Status: store.SyncSkipped}, err
	}
	return created, r.mirror(ctx, created), nil
}

// Update modifies a book in the primary store only. The replica keeps its
// stale copy until the next mirror write.
func (r *BookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	return r.primary.Update(ctx, book)
}

// Mirror writes the book's current state to the replica. Exposed so the
// order flow can refresh a book's mirrored stock after a decrement commits.
func (r *BookRepository) Mirror(ctx context.Context, book *domain.Book) store.ReplicaSync {
	return r.mirror(ctx, book)
}

func (r *BookRepository) mirror(ctx context.Context, book *domain.Book) store.ReplicaSync {
	if r.replica == nil {
		return store.ReplicaSync{Status: store.SyncSkipped}
	}
	if !r.replica.Put(ctx, bookItem(book)) {
		logger.FromContext(ctx).Warn("replica write failed, stores diverged",
			slog.String("entity", "book"), slog.String("id", book.ID))
		return store.ReplicaSync{Status: store.SyncFailed}
	}
	return store.ReplicaSync{Status: store.SyncOK}
}

func coerceBooks(ctx context.Context, items []store.Item) []domain.Book {
	books := make([]domain.Book, 0, len(items))
	for _, item := range items {
		book, err := bookFromItem(item)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping malformed replica item",
				slog.String("entity", "book"), slog.String("error", err.Error()))
			continue
		}
		books = append(books, *book)
	}
	return books
}

// normalizePage clamps pagination arguments to sane bounds shared by both
// backends: pages are 1-indexed and page sizes sit in [1, 100].
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = 10
	case pageSize > 100:
		pageSize = 100
	}
	return page, pageSize
}
