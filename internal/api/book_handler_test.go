package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbazaar/bookbazaar-api/internal/api/shared"
	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

type fakeBookCatalog struct {
	page    *store.Page[domain.Book]
	pageErr error
	book    *domain.Book
	getErr  error
	created *domain.Book
	addErr  error

	gotPage     int
	gotPageSize int
	gotToken    string
	gotAdd      *domain.Book
}

func (f *fakeBookCatalog) GetByID(context.Context, string) (*domain.Book, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.book, nil
}

func (f *fakeBookCatalog) GetPaginated(_ context.Context, page, pageSize int, token string) (*store.Page[domain.Book], error) {
	f.gotPage, f.gotPageSize, f.gotToken = page, pageSize, token
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.page, nil
}

func (f *fakeBookCatalog) Add(_ context.Context, book *domain.Book) (*domain.Book, store.ReplicaSync, error) {
	f.gotAdd = book
	if f.addErr != nil {
		return nil, store.ReplicaSync{Status: store.SyncSkipped}, f.addErr
	}
	return f.created, store.ReplicaSync{Status: store.SyncOK}, nil
}

func TestBookHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("passes pagination params and renders cursor page", func(t *testing.T) {
		t.Parallel()

		catalog := &fakeBookCatalog{page: &store.Page[domain.Book]{
			Items:     []domain.Book{{ID: "1", Title: "A"}},
			Page:      2,
			PageSize:  5,
			HasNext:   true,
			NextToken: "tok-next",
		}}
		handler := NewBookHandler(catalog)

		req := httptest.NewRequest(http.MethodGet, "/api/books?page=2&page_size=5&token=tok-in", nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, catalog.gotPage)
		assert.Equal(t, 5, catalog.gotPageSize)
		assert.Equal(t, "tok-in", catalog.gotToken)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Nil(t, resp["total_count"], "cursor pages carry a null total")
		assert.Equal(t, "tok-next", resp["next_token"])
		assert.Equal(t, true, resp["has_next"])
	})

	t.Run("malformed pagination params fall back to defaults", func(t *testing.T) {
		t.Parallel()

		catalog := &fakeBookCatalog{page: store.EmptyPage[domain.Book](1, 10)}
		handler := NewBookHandler(catalog)

		req := httptest.NewRequest(http.MethodGet, "/api/books?page=abc&page_size=xyz", nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, catalog.gotPage)
		assert.Equal(t, 10, catalog.gotPageSize)
	})
}

func TestBookHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		handler := NewBookHandler(&fakeBookCatalog{book: &domain.Book{ID: "7", Title: "1984"}})

		router := chi.NewRouter()
		router.Get("/api/books/{id}", handler.Get)

		req := httptest.NewRequest(http.MethodGet, "/api/books/7", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var book domain.Book
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
		assert.Equal(t, "1984", book.Title)
	})

	t.Run("missing book is 404", func(t *testing.T) {
		t.Parallel()

		handler := NewBookHandler(&fakeBookCatalog{getErr: store.ErrBookNotFound})

		router := chi.NewRouter()
		router.Get("/api/books/{id}", handler.Get)

		req := httptest.NewRequest(http.MethodGet, "/api/books/404", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBookHandlerCreate(t *testing.T) {
	t.Parallel()

	asRole := func(req *http.Request, userID string, role domain.Role) *http.Request {
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		ctx = context.WithValue(ctx, shared.UserRoleContextKey, role)
		return req.WithContext(ctx)
	}

	t.Run("seller owns the created entry", func(t *testing.T) {
		t.Parallel()

		catalog := &fakeBookCatalog{created: &domain.Book{ID: "42", Title: "New"}}
		handler := NewBookHandler(catalog)

		payload, err := json.Marshal(CreateBookRequest{
			Title:  "New",
			Author: "Author",
			Price:  decimal.RequireFromString("19.99"),
			Stock:  3,
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.Create(rec, asRole(req, "5", domain.RoleSeller))

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, catalog.gotAdd)
		assert.Equal(t, "5", catalog.gotAdd.SellerID)
		assert.Equal(t, domain.DefaultImageURL, catalog.gotAdd.ImageURL)
	})

	t.Run("admin creates system inventory", func(t *testing.T) {
		t.Parallel()

		catalog := &fakeBookCatalog{created: &domain.Book{ID: "42"}}
		handler := NewBookHandler(catalog)

		payload, err := json.Marshal(CreateBookRequest{Title: "New", Author: "Author", Stock: 1})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.Create(rec, asRole(req, "1", domain.RoleAdmin))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, domain.SystemSellerID, catalog.gotAdd.SellerID)
	})

	t.Run("negative price is 400", func(t *testing.T) {
		t.Parallel()

		handler := NewBookHandler(&fakeBookCatalog{})

		payload, err := json.Marshal(CreateBookRequest{
			Title:  "New",
			Author: "Author",
			Price:  decimal.RequireFromString("-1"),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		handler.Create(rec, asRole(req, "5", domain.RoleSeller))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
