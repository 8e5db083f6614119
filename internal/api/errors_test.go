package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
	"github.com/bookbazaar/bookbazaar-api/internal/service"
	"github.com/bookbazaar/bookbazaar-api/internal/service/auth"
	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrTokenExpired, http.StatusUnauthorized},
		{auth.ErrInvalidToken, http.StatusUnauthorized},
		{store.ErrBookNotFound, http.StatusNotFound},
		{store.ErrOrderNotFound, http.StatusNotFound},
		{store.ErrUserNotFound, http.StatusNotFound},
		{store.ErrEmailExists, http.StatusConflict},
		{domain.ErrOutOfStock, http.StatusConflict},
		{domain.ErrValidation, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", store.ErrBookNotFound), http.StatusNotFound},
		{fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err), "error %v", tc.err)
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	// Internal details must never leak through the safe message.
	msg := GetSafeErrorMessage(fmt.Errorf("pq: connection to db.internal:5432 refused"))
	assert.Equal(t, "An internal error occurred", msg)

	assert.Equal(t, "Book is out of stock",
		GetSafeErrorMessage(fmt.Errorf("placing order: %w", domain.ErrOutOfStock)))
}
