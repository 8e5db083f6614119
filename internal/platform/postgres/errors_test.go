package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, mapError(nil, "book", "get", store.ErrBookNotFound, store.ErrDuplicate))
	})

	t.Run("no rows becomes entity not found", func(t *testing.T) {
		t.Parallel()

		err := mapError(sql.ErrNoRows, "book", "get", store.ErrBookNotFound, store.ErrDuplicate)
		assert.ErrorIs(t, err, store.ErrBookNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("unique violation becomes duplicate", func(t *testing.T) {
		t.Parallel()

		pgErr := &pgconn.PgError{Code: uniqueViolationCode}
		err := mapError(pgErr, "user", "add", store.ErrUserNotFound, store.ErrEmailExists)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("other pg errors are not duplicates", func(t *testing.T) {
		t.Parallel()

		pgErr := &pgconn.PgError{Code: "57014"} // query_canceled
		err := mapError(pgErr, "user", "add", store.ErrUserNotFound, store.ErrEmailExists)
		assert.False(t, store.IsDuplicateError(err))
		assert.ErrorIs(t, err, store.ErrUnavailable)
	})

	t.Run("transient faults keep store context", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("dial tcp: connection refused")
		err := mapError(cause, "order", "paginate", store.ErrOrderNotFound, store.ErrDuplicate)

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "order", storeErr.Entity)
		assert.Equal(t, "paginate", storeErr.Operation)
		assert.ErrorIs(t, err, store.ErrUnavailable)
		assert.ErrorIs(t, err, cause)
	})
}

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"7", 7, true},
		{"123456789", 123456789, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"7.5", 0, false},
	}

	for _, tc := range tests {
		got, ok := parseID(tc.in)
		assert.Equal(t, tc.wantOK, ok, "parseID(%q)", tc.in)
		assert.Equal(t, tc.want, got, "parseID(%q)", tc.in)
	}

	assert.Equal(t, "7", formatID(7))
}

func TestNormalizePageArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{1, 10, 1, 10},
		{0, 10, 1, 10},
		{-5, 0, 1, defaultPageSize},
		{3, 1000, 3, maxPageSize},
	}

	for _, tc := range tests {
		page, pageSize := normalizePageArgs(tc.page, tc.pageSize)
		assert.Equal(t, tc.wantPage, page)
		assert.Equal(t, tc.wantPageSize, pageSize)
	}
}

func TestOffsetPage(t *testing.T) {
	t.Parallel()

	page := offsetPage([]int{1, 2, 3}, 2, 3, 7)

	require.NotNil(t, page.TotalCount)
	assert.Equal(t, 7, *page.TotalCount)
	assert.True(t, page.HasNext, "page 2 of 3 with 7 items has a next page")
	assert.True(t, page.HasPrev)
	assert.Empty(t, page.NextToken, "offset protocol never issues cursor tokens")

	last := offsetPage([]int{7}, 3, 3, 7)
	assert.False(t, last.HasNext)
}
