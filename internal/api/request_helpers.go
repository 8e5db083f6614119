package api

import (
	"net/http"

	"github.com/bookbazaar/bookbazaar-api/internal/api/shared"
	"github.com/bookbazaar/bookbazaar-api/internal/domain"
)

// authenticatedUserID reads the user ID the auth middleware stored in the
// request context.
func authenticatedUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(string)
	return userID, ok
}

// authenticatedUserRole reads the role the auth middleware stored in the
// request context.
func authenticatedUserRole(r *http.Request) (domain.Role, bool) {
	role, ok := r.Context().Value(shared.UserRoleContextKey).(domain.Role)
	return role, ok
}
