package handlers

import (
	"net/http"
	"strconv"

	"github.com/Hemanth0810/expense-tracker-app/internal/apperror"
	"github.com/Hemanth0810/expense-tracker-app/internal/expenses"
	"github.com/Hemanth0810/expense-tracker-app/internal/models"
)

// ExpensesViewModel is the data passed to the expense list template.
type ExpensesViewModel struct {
	Expenses       []models.Expense
	Categories     []string
	Search         string
	CategoryFilter string
	Error          string
}

// ListExpenses renders the expense list with optional search and category
// filters.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)
	filter := expenses.Filter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}

	list, err := h.ledger.List(r.Context(), user.ID, filter)
	if err != nil {
		handleError(w, err)
		return
	}

	categories, err := h.ledger.Categories(r.Context(), user.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	h.render(w, r, "expenses.html", ExpensesViewModel{
		Expenses:       list,
		Categories:     categories,
		Search:         filter.Search,
		CategoryFilter: filter.Category,
	})
}

// CreateExpense handles the add-expense form submission.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	_, err := h.ledger.Create(r.Context(), user.ID, expenseInput(r))
	if err != nil {
		if apperror.IsValidation(err) {
			h.renderListWithError(w, r, user.ID, apperror.Message(err))
			return
		}
		handleError(w, err)
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusFound)
}

// EditExpense returns the expense as structured data for the edit form.
func (h *Handlers) EditExpense(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handleError(w, apperror.NewNotFound("Expense not found."))
		return
	}

	expense, err := h.ledger.Get(r.Context(), user.ID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":          expense.ID,
		"amount":      expense.Amount,
		"description": expense.Description,
		"category":    expense.Category,
		"date":        expense.DateString(),
	})
}

// UpdateExpense handles the edit form submission.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handleError(w, apperror.NewNotFound("Expense not found."))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	if _, err := h.ledger.Update(r.Context(), user.ID, id, expenseInput(r)); err != nil {
		handleError(w, err)
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusFound)
}

// DeleteExpense handles the delete form submission.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r)
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handleError(w, apperror.NewNotFound("Expense not found."))
		return
	}

	if err := h.ledger.Delete(r.Context(), user.ID, id); err != nil {
		handleError(w, err)
		return
	}

	http.Redirect(w, r, "/expenses", http.StatusFound)
}

func (h *Handlers) renderListWithError(w http.ResponseWriter, r *http.Request, userID int64, msg string) {
	list, err := h.ledger.List(r.Context(), userID, expenses.Filter{})
	if err != nil {
		handleError(w, err)
		return
	}
	categories, err := h.ledger.Categories(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	h.render(w, r, "expenses.html", ExpensesViewModel{
		Expenses:   list,
		Categories: categories,
		Error:      msg,
	})
}

func expenseInput(r *http.Request) expenses.Input {
	return expenses.Input{
		Amount:      r.FormValue("amount"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Date:        r.FormValue("date"),
	}
}
