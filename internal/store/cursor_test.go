package store_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbazaar/bookbazaar-api/internal/store"
)

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	keys := []store.ContinuationKey{
		{ID: "7"},
		{ID: "a-client-chosen-string-key"},
		{ID: "key with spaces & symbols / +"},
	}

	for _, key := range keys {
		token := store.EncodeCursor(&key)
		require.NotEmpty(t, token)

		decoded := store.DecodeCursor(token)
		require.NotNil(t, decoded)
		assert.Equal(t, key.ID, decoded.ID)
	}
}

func TestCursorEncodeNil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, store.EncodeCursor(nil))
	assert.Empty(t, store.EncodeCursor(&store.ContinuationKey{}))
}

func TestCursorDecodeFailsSoft(t *testing.T) {
	t.Parallel()

	// Every malformed input decodes to nil — "start from the first page" —
	// rather than an error the caller would have to handle.
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"base64 of junk", base64.RawURLEncoding.EncodeToString([]byte("junk"))},
		{"base64 of wrong json", base64.RawURLEncoding.EncodeToString([]byte(`["array"]`))},
		{"base64 of empty object", base64.RawURLEncoding.EncodeToString([]byte(`{}`))},
		{"arbitrary garbage", "garbage"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Nil(t, store.DecodeCursor(tc.token))
		})
	}
}

func TestCursorTokenIsTransportSafe(t *testing.T) {
	t.Parallel()

	token := store.EncodeCursor(&store.ContinuationKey{ID: "key/with?query=chars&more"})

	// base64url alphabet only: no characters that need query-string escaping.
	for _, r := range token {
		isSafe := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_'
		assert.True(t, isSafe, "token contains unsafe character %q", r)
	}
}
