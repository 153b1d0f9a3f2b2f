package handlers

import (
	"net/http"

	"github.com/Hemanth0810/expense-tracker-app/internal/models"
)

// ActivityViewModel is the data passed to the login-activity template.
type ActivityViewModel struct {
	Username string
	Logs     []models.LoginLog
	Stats    models.LoginStats
}

// ProfileActivity renders the current user's login activity and stats.
func (h *Handlers) ProfileActivity(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)

	logs, err := h.logins.ActivityFor(r.Context(), user.ID, 0)
	if err != nil {
		handleError(w, err)
		return
	}

	stats, err := h.logins.StatsFor(r.Context(), user.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	h.render(w, r, "activity.html", ActivityViewModel{
		Username: user.Username,
		Logs:     logs,
		Stats:    stats,
	})
}
