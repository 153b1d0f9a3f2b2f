package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Hemanth0810/expense-tracker-app/internal/models"
)

// Expense dates are stored as YYYY-MM-DD text. ISO dates sort
// lexicographically, so ordering and month-range filters work on the raw
// column.
const dateLayout = "2006-01-02"

// CreateExpense inserts a new expense for a user and returns the stored record.
func (db *DB) CreateExpense(ctx context.Context, userID int64, amount float64, description, category string, date time.Time) (*models.Expense, error) {
	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO expenses (amount, description, category, date, created_at, user_id) VALUES (?, ?, ?, ?, ?, ?)",
		amount, description, category, date.Format(dateLayout), time.Now().UTC(), userID,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetExpense(ctx, userID, id)
}

// GetExpense retrieves a single expense by id, scoped to its owner.
func (db *DB) GetExpense(ctx context.Context, userID, id int64) (*models.Expense, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, amount, description, category, date, created_at, user_id FROM expenses WHERE id = ? AND user_id = ?",
		id, userID,
	)
	return scanExpense(row)
}

// UpdateExpense overwrites the mutable fields of an owned expense. It reports
// whether a row matched, so callers can distinguish missing from updated.
func (db *DB) UpdateExpense(ctx context.Context, userID, id int64, amount float64, description, category string, date time.Time) (bool, error) {
	result, err := db.conn.ExecContext(ctx,
		"UPDATE expenses SET amount = ?, description = ?, category = ?, date = ? WHERE id = ? AND user_id = ?",
		amount, description, category, date.Format(dateLayout), id, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpense removes an owned expense, reporting whether a row matched.
func (db *DB) DeleteExpense(ctx context.Context, userID, id int64) (bool, error) {
	result, err := db.conn.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListExpenses retrieves a user's expenses ordered newest-date-first.
// search is a case-sensitive substring match on the description (instr, not
// LIKE, which folds ASCII case); category is an exact match. Both filters
// combine with AND.
func (db *DB) ListExpenses(ctx context.Context, userID int64, search, category string) ([]models.Expense, error) {
	query := "SELECT id, amount, description, category, date, created_at, user_id FROM expenses WHERE user_id = ?"
	args := []any{userID}

	if search != "" {
		query += " AND instr(description, ?) > 0"
		args = append(args, search)
	}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY date DESC, id DESC"

	return db.queryExpenses(ctx, query, args...)
}

// RecentExpenses retrieves the user's n newest expenses by date.
func (db *DB) RecentExpenses(ctx context.Context, userID int64, n int) ([]models.Expense, error) {
	return db.queryExpenses(ctx,
		"SELECT id, amount, description, category, date, created_at, user_id FROM expenses WHERE user_id = ? ORDER BY date DESC, id DESC LIMIT ?",
		userID, n,
	)
}

// DistinctCategories returns every category label the user has used, sorted.
func (db *DB) DistinctCategories(ctx context.Context, userID int64) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT DISTINCT category FROM expenses WHERE user_id = ? ORDER BY category",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// MonthTotal sums a user's expenses dated within the given year/month.
func (db *DB) MonthTotal(ctx context.Context, userID int64, year, month int) (float64, error) {
	start, end := monthBounds(year, month)
	var total float64
	err := db.conn.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ? AND date >= ? AND date < ?",
		userID, start, end,
	).Scan(&total)
	return total, err
}

// CategoryTotal is one category's summed amount for a month.
type CategoryTotal struct {
	Category string
	Total    float64
}

// CategoryTotalsByMonth groups a user's expenses for the month by category,
// largest total first.
func (db *DB) CategoryTotalsByMonth(ctx context.Context, userID int64, year, month int) ([]CategoryTotal, error) {
	start, end := monthBounds(year, month)
	rows, err := db.conn.QueryContext(ctx,
		`SELECT category, SUM(amount) FROM expenses
		 WHERE user_id = ? AND date >= ? AND date < ?
		 GROUP BY category ORDER BY SUM(amount) DESC, category`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, err
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

// LifetimeTotal sums all of a user's expenses regardless of date.
func (db *DB) LifetimeTotal(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := db.conn.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ?",
		userID,
	).Scan(&total)
	return total, err
}

// ExpenseCount returns the global number of expenses.
func (db *DB) ExpenseCount(ctx context.Context) (int64, error) {
	var count int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses").Scan(&count)
	return count, err
}

// ExpenseTotalAmount returns the global sum of expense amounts.
func (db *DB) ExpenseTotalAmount(ctx context.Context) (float64, error) {
	var total float64
	err := db.conn.QueryRowContext(ctx, "SELECT COALESCE(SUM(amount), 0) FROM expenses").Scan(&total)
	return total, err
}

func (db *DB) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var (
		e       models.Expense
		dateStr string
	)
	if err := row.Scan(&e.ID, &e.Amount, &e.Description, &e.Category, &dateStr, &e.CreatedAt, &e.UserID); err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parse expense date %q: %w", dateStr, err)
	}
	e.Date = date
	return &e, nil
}

func monthBounds(year, month int) (start, end string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.Format(dateLayout), first.AddDate(0, 1, 0).Format(dateLayout)
}
