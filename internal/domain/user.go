package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role enumerates the access levels a user account can hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// User validation errors.
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
)

// User represents a registered account of the bookstore.
// It contains essential user information and authentication details.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	Password       string `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string `json:"-"` // Never expose the password hash in JSON
	IsValidated    bool   `json:"is_validated"`
}

// NewUser creates a customer account with the given credentials.
// The ID is left empty; the primary store assigns identity on create.
// IsValidated starts false and is flipped by an out-of-band verification flow.
//
// NOTE: this only sets up the user structure with the plaintext password.
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		Username:    username,
		Email:       email,
		Password:    password,
		Role:        RoleCustomer,
		IsValidated: false,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, u.Email)
	}

	if !u.Role.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}

	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from a store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs basic structural validation of an email address:
// one "@" with a dotted domain part after it. Uniqueness is enforced by the
// primary store, not here.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
