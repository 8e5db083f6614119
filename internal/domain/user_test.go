package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbazaar/bookbazaar-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid customer", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("winston", "winston@example.com", "minitrue-1984")
		require.NoError(t, err)

		assert.Equal(t, domain.RoleCustomer, user.Role)
		assert.False(t, user.IsValidated, "new accounts start unvalidated")
		assert.Empty(t, user.ID)
	})

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"empty username", "", "a@example.com", "password-123", domain.ErrEmptyUsername},
		{"empty email", "winston", "", "password-123", domain.ErrEmptyEmail},
		{"malformed email", "winston", "not-an-email", "password-123", domain.ErrInvalidEmail},
		{"email without domain dot", "winston", "a@localhost", "password-123", domain.ErrInvalidEmail},
		{"short password", "winston", "a@example.com", "short", domain.ErrPasswordTooShort},
		{"long password", "winston", "a@example.com", strings.Repeat("x", 73), domain.ErrPasswordTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewUser(tc.username, tc.email, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from a store has a hash and no plaintext password.
	user := domain.User{
		ID:             "3",
		Username:       "winston",
		Email:          "winston@example.com",
		Role:           domain.RoleAdmin,
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)

	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	user.Role = "superuser"
	assert.ErrorIs(t, user.Validate(), domain.ErrInvalidRole)
}
