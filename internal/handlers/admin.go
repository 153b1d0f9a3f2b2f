package handlers

import (
	"net/http"

	"github.com/Hemanth0810/expense-tracker-app/internal/models"
	"github.com/Hemanth0810/expense-tracker-app/internal/reports"
	"github.com/Hemanth0810/expense-tracker-app/internal/storage"
)

const adminListLimit = 10

// AdminDashboardViewModel is the data passed to the admin dashboard template.
type AdminDashboardViewModel struct {
	Summary        reports.Summary
	RecentLogins   []storage.LoginWithUser
	TopUsers       []storage.UserLoginCount
	RecentFailures []storage.LoginWithUser
}

// AdminDashboard renders the global statistics view.
func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.AdminSummary(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	recent, err := h.logins.RecentLogins(r.Context(), adminListLimit)
	if err != nil {
		handleError(w, err)
		return
	}

	top, err := h.logins.TopUsers(r.Context(), adminListLimit)
	if err != nil {
		handleError(w, err)
		return
	}

	failures, err := h.logins.RecentFailures(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	h.render(w, r, "admin_dashboard.html", AdminDashboardViewModel{
		Summary:        summary,
		RecentLogins:   recent,
		TopUsers:       top,
		RecentFailures: failures,
	})
}

// AdminUsersViewModel is the data passed to the admin user list template.
type AdminUsersViewModel struct {
	Users []models.User
}

// AdminUsers renders the all-users view.
func (h *Handlers) AdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.ListUsers(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	h.render(w, r, "admin_users.html", AdminUsersViewModel{Users: users})
}
