package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookbazaar/bookbazaar-api/internal/api/shared"
	"github.com/bookbazaar/bookbazaar-api/internal/domain"
)

// OrderPlacer is the ordering surface the handler consumes.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, userID, bookID string) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID, userID string) (*domain.Order, error)
	History(ctx context.Context, userID string) ([]domain.Order, error)
}

// OrderHandler serves the order endpoints. All of them require an
// authenticated user.
type OrderHandler struct {
	orders OrderPlacer
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orders OrderPlacer) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PlaceOrderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), userID, req.BookID)
	if err != nil {
		respondMapped(w, r, err, "Failed to place order")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, order)
}

// Get handles GET /api/orders/{id}. Only the order's owner can read it.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondMapped(w, r, err, "Failed to load order")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, order)
}

// History handles GET /api/orders.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	orders, err := h.orders.History(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load orders", err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, orders)
}
