// Package seed bulk-loads the book catalog from tabular CSV data. The
// loader is idempotent: a row whose title and author already exist in the
// catalog is skipped, so re-running a seed never duplicates inventory.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// Source provides the CSV stream to load.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// BookWriter is the catalog surface the loader consumes: the existing
// catalog for deduplication, and the write-through create.
type BookWriter interface {
	GetAll(ctx context.Context) ([]domain.Book, error)
	Add(ctx context.Context, book *domain.Book) (*domain.Book, store.ReplicaSync, error)
}

// Summary reports what a seed run did.
type Summary struct {
	Created  int
	Skipped  int
	Failed   int
	Mirrored int
}

// Loader reads book rows from a Source and writes them through the
// dual-backend repository.
type Loader struct {
	books BookWriter
}

// NewLoader creates a Loader.
func NewLoader(books BookWriter) *Loader {
	return &Loader{books: books}
}

// Expected CSV header columns. seller_id and image_url are optional; the
// domain defaults fill them in.
var requiredColumns = []string{"title", "author", "price", "stock"}

// Run loads every row from the source. Individual bad rows are counted and
// logged, not fatal; only an unreadable source or header fails the run.
func (l *Loader) Run(ctx context.Context, src Source) (*Summary, error) {
	log := logger.FromContext(ctx)

	existing, err := l.books.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing catalog: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, book := range existing {
		seen[dedupKey(book.Title, book.Author)] = true
	}

	stream, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed source: %w", err)
	}
	defer func() {
		if closeErr := stream.Close(); closeErr != nil {
			log.Warn("failed to close seed source", slog.String("error", closeErr.Error()))
		}
	}()

	reader := csv.NewReader(stream)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn("skipping unreadable CSV row",
				slog.Int("line", line), slog.String("error", err.Error()))
			summary.Failed++
			continue
		}

		book, err := rowToBook(record, columns)
		if err != nil {
			log.Warn("skipping invalid seed row",
				slog.Int("line", line), slog.String("error", err.Error()))
			summary.Failed++
			continue
		}

		key := dedupKey(book.Title, book.Author)
		if seen[key] {
			summary.Skipped++
			continue
		}

		_, sync, err := l.books.Add(ctx, book)
		if err != nil {
			log.Warn("failed to seed book",
				slog.Int("line", line),
				slog.String("title", book.Title),
				slog.String("error", err.Error()))
			summary.Failed++
			continue
		}

		seen[key] = true
		summary.Created++
		if sync.Synced() {
			summary.Mirrored++
		}
	}

	log.Info("seed run finished",
		slog.Int("created", summary.Created),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.Int("mirrored", summary.Mirrored))

	return summary, nil
}

func dedupKey(title, author string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "\x00" + strings.ToLower(strings.TrimSpace(author))
}

func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing required column %q", required)
		}
	}
	return columns, nil
}

func rowToBook(record []string, columns map[string]int) (*domain.Book, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(field("price"), ",", ""))
	if err != nil {
		return nil, fmt.Errorf("bad price %q: %w", field("price"), err)
	}

	stock, err := strconv.Atoi(field("stock"))
	if err != nil {
		return nil, fmt.Errorf("bad stock %q: %w", field("stock"), err)
	}

	book, err := domain.NewBook(field("title"), field("author"), field("description"), price, stock)
	if err != nil {
		return nil, err
	}

	if sellerID := field("seller_id"); sellerID != "" {
		book.SellerID = sellerID
	}
	if imageURL := field("image_url"); imageURL != "" {
		book.ImageURL = imageURL
	}

	return book, nil
}
