package handlers

import (
	"net/http"

	"github.com/Hemanth0810/expense-tracker-app/internal/models"
	"github.com/Hemanth0810/expense-tracker-app/internal/storage"
)

// DashboardViewModel is the data passed to the dashboard template.
type DashboardViewModel struct {
	Username       string
	MonthlyTotal   float64
	LifetimeTotal  float64
	Breakdown      []storage.CategoryTotal
	RecentExpenses []models.Expense
	Year           int
	Month          int
}

// Dashboard renders the per-user dashboard for the current month.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)
	now := h.now()
	year, month := now.Year(), int(now.Month())

	monthlyTotal, err := h.reports.MonthlyTotal(r.Context(), user.ID, year, month)
	if err != nil {
		handleError(w, err)
		return
	}

	breakdown, err := h.reports.CategoryBreakdown(r.Context(), user.ID, year, month)
	if err != nil {
		handleError(w, err)
		return
	}

	recent, err := h.reports.RecentExpenses(r.Context(), user.ID, 0)
	if err != nil {
		handleError(w, err)
		return
	}

	lifetime, err := h.reports.LifetimeTotal(r.Context(), user.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	h.render(w, r, "dashboard.html", DashboardViewModel{
		Username:       user.Username,
		MonthlyTotal:   monthlyTotal,
		LifetimeTotal:  lifetime,
		Breakdown:      breakdown,
		RecentExpenses: recent,
		Year:           year,
		Month:          month,
	})
}

// ChartData returns the current month's category breakdown as parallel
// arrays for the dashboard chart.
func (h *Handlers) ChartData(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)
	now := h.now()

	breakdown, err := h.reports.CategoryBreakdown(r.Context(), user.ID, now.Year(), int(now.Month()))
	if err != nil {
		handleError(w, err)
		return
	}

	categories := make([]string, 0, len(breakdown))
	amounts := make([]float64, 0, len(breakdown))
	for _, ct := range breakdown {
		categories = append(categories, ct.Category)
		amounts = append(amounts, ct.Total)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"amounts":    amounts,
	})
}
