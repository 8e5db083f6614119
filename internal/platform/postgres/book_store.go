package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// BookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type BookStore struct {
	db store.DBTX
}

// NewBookStore creates a new PostgreSQL implementation of the BookStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
func NewBookStore(db store.DBTX) *BookStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &BookStore{db: db}
}

// Ensure BookStore implements store.BookStore.
var _ store.BookStore = (*BookStore)(nil)

// WithTx implements store.BookStore.WithTx
func (s *BookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &BookStore{db: tx}
}

const bookColumns = "id, title, author, description, price, stock, seller_id, image_url"

// scanBook reads one row into a domain Book, converting the numeric surrogate
// key to the domain's string identity.
func scanBook(row interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var (
		id   int64
		book domain.Book
	)
	if err := row.Scan(
		&id,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.Price,
		&book.Stock,
		&book.SellerID,
		&book.ImageURL,
	); err != nil {
		return nil, err
	}
	book.ID = formatID(id)
	return &book, nil
}

// GetAll implements store.BookStore.GetAll
// It returns every book ordered by insertion recency.
func (s *BookStore) GetAll(ctx context.Context) ([]domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err, "book", "get_all", store.ErrBookNotFound, store.ErrDuplicate)
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
		return nil, mapError(err, "book", "get_all", store.ErrBookNotFound, store.ErrDuplicate)
	}

	return books, nil
}

// GetByID implements store.BookStore.GetByID
// Returns store.ErrBookNotFound if the book does not exist.
func (s *BookStore) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	numID, ok := parseID(id)
	if !ok {
		return nil, store.ErrBookNotFound
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(s.db.QueryRowContext(ctx, query, numID))
	if err != nil {
		return nil, mapError(err, "book", "get_by_id", store.ErrBookNotFound, store.ErrDuplicate)
	}

	return book, nil
}

// Add implements store.BookStore.Add
// It validates the book, applies defaults, and returns the persisted book
// with its store-assigned identity.
func (s *BookStore) Add(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	book.ApplyDefaults()
	if err := book.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO books (title, author, description, price, stock, seller_id, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		book.Title,
		book.Author,
		book.Description,
		book.Price,
		book.Stock,
		book.SellerID,
		book.ImageURL,
	).Scan(&id)
	if err != nil {
		return nil, mapError(err, "book", "add", store.ErrBookNotFound, store.ErrDuplicate)
	}

	persisted := *book
	persisted.ID = formatID(id)
	return &persisted, nil
}

// Update implements store.BookStore.Update
// Last write wins; there is no optimistic concurrency.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *BookStore) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := book.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	numID, ok := parseID(book.ID)
	if !ok {
		return nil, store.ErrBookNotFound
	}

	query := `
		UPDATE books
		SET title = $1, author = $2, description = $3, price = $4,
		    stock = $5, seller_id = $6, image_url = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(ctx, query,
		book.Title,
		book.Author,
		book.Description,
		book.Price,
		book.Stock,
		book.SellerID,
		book.ImageURL,
		numID,
	)
	if err != nil {
		return nil, mapError(err, "book", "update", store.ErrBookNotFound, store.ErrDuplicate)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, store.ErrBookNotFound
	}

	return book, nil
}

// Paginate implements store.BookStore.Paginate
// Offset-based, 1-indexed, with a real total count. Fails closed to an empty
// page when the database is unreachable.
func (s *BookStore) Paginate(ctx context.Context, page, pageSize int) (*store.Page[domain.Book], error) {
	log := logger.FromContext(ctx)
	page, pageSize = normalizePageArgs(page, pageSize)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		log.Warn("book pagination failed closed",
			slog.Int("page", page),
			slog.String("error", err.Error()))
		return store.EmptyPage[domain.Book](page, pageSize), nil
	}

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Warn("book pagination failed closed",
			slog.Int("page", page),
			slog.String("error", err.Error()))
		return store.EmptyPage[domain.Book](page, pageSize), nil
	}
	defer func() { _ = rows.Close() }()

	items := make([]domain.Book, 0, pageSize)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		items = append(items, *book)
	}
	if err := rows.Err(); err != nil {
		log.Warn("book pagination failed closed",
			slog.Int("page", page),
			slog.String("error", err.Error()))
		return store.EmptyPage[domain.Book](page, pageSize), nil
	}

	return offsetPage(items, page, pageSize, total), nil
}
