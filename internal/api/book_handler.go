package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookbazaar/bookbazaar-api/internal/api/shared"
	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

// BookCatalog is the catalog surface the handler consumes.
type BookCatalog interface {
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	GetPaginated(ctx context.Context, page, pageSize int, token string) (*store.Page[domain.Book], error)
	Add(ctx context.Context, book *domain.Book) (*domain.Book, store.ReplicaSync, error)
}

// BookHandler serves the catalog endpoints.
type BookHandler struct {
	books BookCatalog
}

// NewBookHandler creates a BookHandler.
func NewBookHandler(books BookCatalog) *BookHandler {
	return &BookHandler{books: books}
}

// List handles GET /api/books. Pagination accepts page and page_size plus
// an optional continuation token from a previous response; when the token
// is present the page number is informational only.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	token := r.URL.Query().Get("token")

	result, err := h.books.GetPaginated(r.Context(), page, pageSize, token)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list books", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newPageResponse(result))
}

// Get handles GET /api/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	book, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		respondMapped(w, r, err, "Failed to load book")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, book)
}

// Create handles POST /api/books (sellers and admins only). The creating
// seller owns the entry unless they are an admin loading system inventory.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	book, err := domain.NewBook(req.Title, req.Author, req.Description, req.Price, req.Stock)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid book data: "+err.Error())
		return
	}

	if userID, ok := authenticatedUserID(r); ok {
		if role, _ := authenticatedUserRole(r); role == domain.RoleSeller {
			book.SellerID = userID
		}
	}

	created, _, err := h.books.Add(r.Context(), book)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create book", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// parsePagination reads page and page_size query parameters, tolerating
// absent or malformed values. Range clamping happens in the repositories.
func parsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = 10

	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			pageSize = parsed
		}
	}
	return page, pageSize
}

// respondMapped maps a service error to its status and safe message; server
// errors additionally log the cause.
func respondMapped(w http.ResponseWriter, r *http.Request, err error, logMessage string) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, logMessage, err)
		return
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}
