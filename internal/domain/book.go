package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// SystemSellerID is the sentinel seller for catalog entries that are not
// owned by a registered seller account (e.g. bulk-loaded inventory).
const SystemSellerID = "system"

// DefaultImageURL is used when a book has no cover image of its own.
const DefaultImageURL = "/static/images/placeholder.png"

// Book validation errors.
var (
	ErrEmptyBookTitle  = errors.New("book title cannot be empty")
	ErrEmptyBookAuthor = errors.New("book author cannot be empty")
)

// Book represents a catalog entry in the bookstore.
//
// The ID is a string in the domain even though the primary store assigns a
// numeric surrogate key; the secondary store is string-keyed, and keeping one
// representation here means the repositories only convert at the adapter
// boundary. Price is a decimal, never a float: the secondary store persists
// monetary amounts in an arbitrary-precision numeric type and round-tripping
// through float64 would corrupt cents.
type Book struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	SellerID    string          `json:"seller_id"`
	ImageURL    string          `json:"image_url"`
}

// NewBook creates a Book with defaults applied (system seller, placeholder
// image) and validates it. The ID is left empty; the primary store assigns
// identity on create.
func NewBook(title, author, description string, price decimal.Decimal, stock int) (*Book, error) {
	book := &Book{
		Title:       title,
		Author:      author,
		Description: description,
		Price:       price,
		Stock:       stock,
		SellerID:    SystemSellerID,
		ImageURL:    DefaultImageURL,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks if the Book has valid data.
// Returns an error if any field fails validation.
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrEmptyBookTitle
	}

	if b.Author == "" {
		return ErrEmptyBookAuthor
	}

	if b.Price.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidPrice, b.Price)
	}

	if b.Stock < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidStock, b.Stock)
	}

	return nil
}

// ApplyDefaults fills in the sentinel seller and placeholder image when the
// corresponding fields are absent. Used by the bulk loader and by the
// secondary-store item coercion, where either field may be missing.
func (b *Book) ApplyDefaults() {
	if b.SellerID == "" {
		b.SellerID = SystemSellerID
	}
	if b.ImageURL == "" {
		b.ImageURL = DefaultImageURL
	}
}
