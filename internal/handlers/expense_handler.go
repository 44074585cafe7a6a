package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kmurithi/ministore/internal/ledger"
	"github.com/kmurithi/ministore/internal/store"
)

// ExpenseHandler handles expense listing, submission, edits and removal.
type ExpenseHandler struct {
	ledger *ledger.Ledger
	log    *slog.Logger
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(l *ledger.Ledger, log *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		ledger: l,
		log:    log,
	}
}

type createExpenseRequest struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Currency string  `json:"currency"`
}

type updateExpenseRequest struct {
	Name     *string  `json:"name"`
	Amount   *float64 `json:"amount"`
	Date     *string  `json:"date"`
	Category *string  `json:"category"`
}

// ListExpenses handles GET /api/expenses
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.ledger.Expenses(), h.log)
}

// CreateExpense handles POST /api/expenses
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	expense, err := h.ledger.AddManualExpense(r.Context(), ledger.ExpenseInput{
		Name:     req.Name,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Currency: req.Currency,
	})
	if err != nil {
		h.writeExpenseError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, expense, h.log)
}

// UpdateExpense handles PUT /api/expenses/{expenseId}
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseId")

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	expense, err := h.ledger.UpdateExpense(r.Context(), expenseID, ledger.ExpenseUpdate{
		Name:     req.Name,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
	})
	if err != nil {
		h.writeExpenseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, expense, h.log)
}

// DeleteExpense handles DELETE /api/expenses/{expenseId}
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseId")

	if err := h.ledger.DeleteExpense(r.Context(), expenseID); err != nil {
		h.writeExpenseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ExpenseHandler) writeExpenseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
	case errors.Is(err, ledger.ErrInvalidAmount):
		WriteError(w, http.StatusBadRequest, "Expense amount must be greater than zero", h.log)
	case errors.Is(err, ledger.ErrExpenseNotFound):
		WriteError(w, http.StatusNotFound, "Expense not found", h.log)
	case errors.Is(err, ledger.ErrExpenseImmutable):
		WriteError(w, http.StatusConflict, "Auto-generated expenses cannot be modified", h.log)
	case errors.Is(err, store.ErrNotPersisted):
		h.log.Error("expense failed to persist", "error", err)
		WriteError(w, http.StatusBadGateway, "Expense could not be saved, please try again", h.log)
	default:
		h.log.Error("expense operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
