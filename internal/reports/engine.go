// Package reports aggregates expense and login data for dashboards. The
// reference month is always supplied by the caller; the engine never reads
// the clock.
package reports

import (
	"context"

	"github.com/Hemanth0810/expense-tracker-app/internal/apperror"
	"github.com/Hemanth0810/expense-tracker-app/internal/models"
	"github.com/Hemanth0810/expense-tracker-app/internal/storage"
)

// DefaultRecentLimit is how many recent expenses a dashboard shows.
const DefaultRecentLimit = 10

// Engine computes per-user and global aggregates.
type Engine struct {
	db *storage.DB
}

// NewEngine creates an aggregation engine.
func NewEngine(db *storage.DB) *Engine {
	return &Engine{db: db}
}

// MonthlyTotal sums the user's expenses dated in the given year/month.
func (e *Engine) MonthlyTotal(ctx context.Context, userID int64, year, month int) (float64, error) {
	total, err := e.db.MonthTotal(ctx, userID, year, month)
	if err != nil {
		return 0, apperror.NewDatabase("compute monthly total", err)
	}
	return total, nil
}

// CategoryBreakdown groups the user's expenses for the month by category,
// largest total first.
func (e *Engine) CategoryBreakdown(ctx context.Context, userID int64, year, month int) ([]storage.CategoryTotal, error) {
	totals, err := e.db.CategoryTotalsByMonth(ctx, userID, year, month)
	if err != nil {
		return nil, apperror.NewDatabase("compute category breakdown", err)
	}
	return totals, nil
}

// RecentExpenses returns the user's n newest expenses by date. n <= 0 falls
// back to DefaultRecentLimit.
func (e *Engine) RecentExpenses(ctx context.Context, userID int64, n int) ([]models.Expense, error) {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	list, err := e.db.RecentExpenses(ctx, userID, n)
	if err != nil {
		return nil, apperror.NewDatabase("list recent expenses", err)
	}
	return list, nil
}

// LifetimeTotal sums all of the user's expenses regardless of date.
func (e *Engine) LifetimeTotal(ctx context.Context, userID int64) (float64, error) {
	total, err := e.db.LifetimeTotal(ctx, userID)
	if err != nil {
		return 0, apperror.NewDatabase("compute lifetime total", err)
	}
	return total, nil
}

// Summary is the global, unscoped admin view.
type Summary struct {
	TotalUsers            int64   `json:"total_users"`
	TotalExpenses         int64   `json:"total_expenses"`
	TotalAmount           float64 `json:"total_amount"`
	TotalSuccessfulLogins int64   `json:"total_successful_logins"`
	TotalFailedLogins     int64   `json:"total_failed_logins"`
}

// AdminSummary computes the global summary across all users.
func (e *Engine) AdminSummary(ctx context.Context) (Summary, error) {
	var s Summary
	var err error

	if s.TotalUsers, err = e.db.UserCount(ctx); err != nil {
		return Summary{}, apperror.NewDatabase("count users", err)
	}
	if s.TotalExpenses, err = e.db.ExpenseCount(ctx); err != nil {
		return Summary{}, apperror.NewDatabase("count expenses", err)
	}
	if s.TotalAmount, err = e.db.ExpenseTotalAmount(ctx); err != nil {
		return Summary{}, apperror.NewDatabase("sum expenses", err)
	}
	if s.TotalSuccessfulLogins, s.TotalFailedLogins, err = e.db.GlobalLoginCounts(ctx); err != nil {
		return Summary{}, apperror.NewDatabase("count logins", err)
	}
	return s, nil
}
