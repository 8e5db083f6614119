package store

import (
	"encoding/base64"
	"encoding/json"
)

// The pagination cursor codec turns a secondary-store continuation key into
// an opaque, transport-safe token and back. The token is JSON serialized and
// then base64url encoded so it survives query strings unescaped.
//
// Decoding fails soft: a malformed or tampered token is treated as "no
// cursor", restarting pagination at the first page instead of erroring the
// request. Callers therefore never see a cursor error.

// EncodeCursor serializes a continuation key into an opaque token.
// A nil key (no further pages) encodes to the empty string.
func EncodeCursor(key *ContinuationKey) string {
	if key == nil || key.ID == "" {
		return ""
	}

	// Marshaling a two-string-field struct cannot fail.
	raw, err := json.Marshal(key)
	if err != nil {
		return ""
	}

	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a previously issued token back into a continuation
// key. Returns nil — meaning "start from the first page" — for empty,
// malformed, or tampered tokens.
func DecodeCursor(token string) *ContinuationKey {
	if token == "" {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}

	var key ContinuationKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil
	}

	if key.ID == "" {
		return nil
	}

	return &key
}
