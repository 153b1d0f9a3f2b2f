// Package expenses is the per-user expense ledger. Every operation is scoped
// to the acting user's id; an expense owned by someone else is reported as
// not found, never as forbidden.
package expenses

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Hemanth0810/expense-tracker-app/internal/apperror"
	"github.com/Hemanth0810/expense-tracker-app/internal/models"
	"github.com/Hemanth0810/expense-tracker-app/internal/storage"
)

const (
	maxDescriptionLen = 200
	maxCategoryLen    = 50
	dateLayout        = "2006-01-02"
)

// Input carries the raw form fields of a create or edit submission.
type Input struct {
	Amount      string
	Description string
	Category    string
	Date        string
}

// Filter narrows a listing. Search is a case-sensitive substring match on the
// description; Category is an exact match. Both combine with AND.
type Filter struct {
	Search   string
	Category string
}

// Ledger owns the Expense lifecycle.
type Ledger struct {
	db *storage.DB
}

// NewLedger creates an expense ledger.
func NewLedger(db *storage.DB) *Ledger {
	return &Ledger{db: db}
}

// Create validates the input and inserts a new expense for the user.
// Negative amounts are accepted; there is no bound on amount.
func (l *Ledger) Create(ctx context.Context, userID int64, in Input) (*models.Expense, error) {
	amount, description, category, date, err := parseInput(in)
	if err != nil {
		return nil, err
	}

	expense, err := l.db.CreateExpense(ctx, userID, amount, description, category, date)
	if err != nil {
		return nil, apperror.NewDatabase("create expense", err)
	}
	return expense, nil
}

// Get retrieves an owned expense by id.
func (l *Ledger) Get(ctx context.Context, userID, expenseID int64) (*models.Expense, error) {
	expense, err := l.db.GetExpense(ctx, userID, expenseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("Expense not found.")
	}
	if err != nil {
		return nil, apperror.NewDatabase("get expense", err)
	}
	return expense, nil
}

// Update overwrites all four mutable fields of an owned expense atomically.
func (l *Ledger) Update(ctx context.Context, userID, expenseID int64, in Input) (*models.Expense, error) {
	amount, description, category, date, err := parseInput(in)
	if err != nil {
		return nil, err
	}

	updated, err := l.db.UpdateExpense(ctx, userID, expenseID, amount, description, category, date)
	if err != nil {
		return nil, apperror.NewDatabase("update expense", err)
	}
	if !updated {
		return nil, apperror.NewNotFound("Expense not found.")
	}
	return l.Get(ctx, userID, expenseID)
}

// Delete removes an owned expense permanently.
func (l *Ledger) Delete(ctx context.Context, userID, expenseID int64) error {
	deleted, err := l.db.DeleteExpense(ctx, userID, expenseID)
	if err != nil {
		return apperror.NewDatabase("delete expense", err)
	}
	if !deleted {
		return apperror.NewNotFound("Expense not found.")
	}
	return nil
}

// List retrieves the user's expenses, newest-date-first, applying the filter.
func (l *Ledger) List(ctx context.Context, userID int64, f Filter) ([]models.Expense, error) {
	list, err := l.db.ListExpenses(ctx, userID, f.Search, f.Category)
	if err != nil {
		return nil, apperror.NewDatabase("list expenses", err)
	}
	return list, nil
}

// Categories returns every category label the user has used.
func (l *Ledger) Categories(ctx context.Context, userID int64) ([]string, error) {
	categories, err := l.db.DistinctCategories(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabase("list categories", err)
	}
	return categories, nil
}

func parseInput(in Input) (amount float64, description, category string, date time.Time, err error) {
	amount, perr := strconv.ParseFloat(strings.TrimSpace(in.Amount), 64)
	if perr != nil {
		return 0, "", "", time.Time{}, apperror.NewValidation("Amount must be a number.")
	}

	description = strings.TrimSpace(in.Description)
	if description == "" {
		return 0, "", "", time.Time{}, apperror.NewValidation("Description is required.")
	}
	if len(description) > maxDescriptionLen {
		return 0, "", "", time.Time{}, apperror.NewValidation("Description must be at most 200 characters.")
	}

	category = strings.TrimSpace(in.Category)
	if category == "" {
		return 0, "", "", time.Time{}, apperror.NewValidation("Category is required.")
	}
	if len(category) > maxCategoryLen {
		return 0, "", "", time.Time{}, apperror.NewValidation("Category must be at most 50 characters.")
	}

	date, perr = time.Parse(dateLayout, strings.TrimSpace(in.Date))
	if perr != nil {
		return 0, "", "", time.Time{}, apperror.NewValidation("Date must be in YYYY-MM-DD format.")
	}

	return amount, description, category, date, nil
}
