package api

import (
	"github.com/shopspring/decimal"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Token  string `json:"token,omitempty"`
}

// CreateBookRequest is the payload for adding a catalog entry. Price
// accepts a JSON number or string and is decoded as an exact decimal.
type CreateBookRequest struct {
	Title       string          `json:"title"       validate:"required"`
	Author      string          `json:"author"      validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"       validate:"gte=0"`
}

// PlaceOrderRequest is the payload for placing an order.
type PlaceOrderRequest struct {
	BookID string `json:"book_id" validate:"required"`
}

// PageResponse is the JSON shape of a paginated listing. TotalCount is null
// under cursor pagination, where computing it would cost a full scan.
type PageResponse[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalCount *int   `json:"total_count"`
	HasNext    bool   `json:"has_next"`
	HasPrev    bool   `json:"has_prev"`
	NextToken  string `json:"next_token,omitempty"`
}

// newPageResponse converts a store page into the response shape.
func newPageResponse[T any](page *store.Page[T]) PageResponse[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalCount: page.TotalCount,
		HasNext:    page.HasNext,
		HasPrev:    page.HasPrev,
		NextToken:  page.NextToken,
	}
}

// userResponse strips a user down to its public fields.
type userResponse struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	IsValidated bool        `json:"is_validated"`
}

func newUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		IsValidated: user.IsValidated,
	}
}
