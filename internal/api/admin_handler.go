package api

import (
	"context"
	"net/http"

	"github.com/bookbazaar/bookbazaar-api/internal/api/shared"
	"github.com/bookbazaar/bookbazaar-api/internal/service"
)

// DashboardProvider is the admin surface the handler consumes.
type DashboardProvider interface {
	Dashboard(ctx context.Context) (*service.Dashboard, error)
}

// AdminHandler serves the admin dashboard. Routing restricts it to admins.
type AdminHandler struct {
	admin DashboardProvider
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin DashboardProvider) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.admin.Dashboard(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load dashboard", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dashboard)
}
