package repository

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// Raw replica items use camelCase field names and render every value as a
// string. The helpers below own the coercion in both directions. A field
// that fails to coerce makes the whole item malformed; the caller then
// treats the item as absent and falls back to the primary store.

func bookItem(b *domain.Book) store.Item {
	return store.Item{
		"id":          b.ID,
		"title":       b.Title,
		"author":      b.Author,
		"description": b.Description,
		"price":       b.Price.String(),
		"stock":       strconv.Itoa(b.Stock),
		"sellerId":    b.SellerID,
		"imageUrl":    b.ImageURL,
	}
}

func bookFromItem(item store.Item) (*domain.Book, error) {
	if item.ID() == "" {
		return nil, fmt.Errorf("book item has no id")
	}

	price, err := decimal.NewFromString(item["price"])
	if err != nil {
		return nil, fmt.Errorf("book %s has malformed price %q: %w", item.ID(), item["price"], err)
	}

	stock, err := strconv.Atoi(item["stock"])
	if err != nil {
		return nil, fmt.Errorf("book %s has malformed stock %q: %w", item.ID(), item["stock"], err)
	}

	book := &domain.Book{
		ID:          item.ID(),
		Title:       item["title"],
		Author:      item["author"],
		Description: item["description"],
		Price:       price,
		Stock:       stock,
		SellerID:    item["sellerId"],
		ImageURL:    item["imageUrl"],
	}
	book.ApplyDefaults()

	return book, nil
}

func orderItem(o *domain.Order) store.Item {
	return store.Item{
		"id":         o.ID,
		"userId":     o.UserID,
		"bookId":     o.BookID,
		"quantity":   strconv.Itoa(o.Quantity),
		"totalPrice": o.TotalPrice.String(),
		"status":     string(o.Status),
		"orderDate":  o.OrderDate.UTC().Format(time.RFC3339),
	}
}

func orderFromItem(item store.Item) (*domain.Order, error) {
	if item.ID() == "" {
		return nil, fmt.Errorf("order item has no id")
	}

	quantity, err := strconv.Atoi(item["quantity"])
	if err != nil {
		return nil, fmt.Errorf("order %s has malformed quantity %q: %w", item.ID(), item["quantity"], err)
	}

	total, err := decimal.NewFromString(item["totalPrice"])
	if err != nil {
		return nil, fmt.Errorf("order %s has malformed total price %q: %w", item.ID(), item["totalPrice"], err)
	}

	status := domain.OrderStatus(item["status"])
	if !status.IsValid() {
		return nil, fmt.Errorf("order %s has unknown status %q", item.ID(), item["status"])
	}

	// An unparseable order date is tolerated: the order itself is sound, so
	// it is surfaced with the current time rather than dropped.
	orderDate, err := time.Parse(time.RFC3339, item["orderDate"])
	if err != nil {
		orderDate = time.Now().UTC()
	}

	return &domain.Order{
		ID:         item.ID(),
		UserID:     item["userId"],
		BookID:     item["bookId"],
		Quantity:   quantity,
		TotalPrice: total,
		Status:     status,
		OrderDate:  orderDate,
	}, nil
}

func userItem(u *domain.User) store.Item {
	return store.Item{
		"id":           u.ID,
		"username":     u.Username,
		"email":        u.Email,
		"role":         string(u.Role),
		"passwordHash": u.HashedPassword,
		"isValidated":  strconv.FormatBool(u.IsValidated),
	}
}

func userFromItem(item store.Item) (*domain.User, error) {
	if item.ID() == "" {
		return nil, fmt.Errorf("user item has no id")
	}

	role := domain.Role(item["role"])
	if !role.IsValid() {
		return nil, fmt.Errorf("user %s has unknown role %q", item.ID(), item["role"])
	}

	validated, err := strconv.ParseBool(item["isValidated"])
	if err != nil {
		validated = false
	}

	return &domain.User{
		ID:             item.ID(),
		Username:       item["username"],
		Email:          item["email"],
		Role:           role,
		HashedPassword: item["passwordHash"],
		IsValidated:    validated,
	}, nil
}

// sortItemsByIDDesc orders replica items newest first, matching the primary
// store's insertion-recency ordering. IDs that parse as integers compare
// numerically so "10" sorts after "9".
func sortItemsByIDDesc(items []store.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, errA := strconv.ParseInt(items[i].ID(), 10, 64)
		b, errB := strconv.ParseInt(items[j].ID(), 10, 64)
		if errA == nil && errB == nil {
			return a > b
		}
		return items[i].ID() > items[j].ID()
	})
}
