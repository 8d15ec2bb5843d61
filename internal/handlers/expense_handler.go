package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"residencia-backend/internal/cache"
	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
)

type ExpenseHandler struct {
	Engine *engine.Engine
}

func NewExpenseHandler(e *engine.Engine) *ExpenseHandler {
	return &ExpenseHandler{Engine: e}
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Engine.Snapshot().Expenses)
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	if expense.Currency == "" {
		expense.Currency = "ARS"
	}

	state := h.Engine.Dispatch(engine.AddExpense{Expense: expense})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"expense":    expense,
		"petty_cash": state.PettyCash,
	})
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	expense.ID = id

	h.Engine.Dispatch(engine.UpdateExpense{Expense: expense})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expense)
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	state := h.Engine.Dispatch(engine.DeleteExpense{ExpenseID: id})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]float64{"petty_cash": state.PettyCash})
}
