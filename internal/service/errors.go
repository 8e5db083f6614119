package service

import "errors"

// Service-level errors.
var (
	// ErrInvalidCredentials is returned on a failed login. Unknown email and
	// wrong password collapse into this one error so responses do not reveal
	// which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
