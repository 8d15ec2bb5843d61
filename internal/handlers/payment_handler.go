package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"residencia-backend/internal/cache"
	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/services"
)

type PaymentHandler struct {
	Engine   *engine.Engine
	Receipts *services.ReceiptService
}

func NewPaymentHandler(e *engine.Engine, receipts *services.ReceiptService) *PaymentHandler {
	return &PaymentHandler{Engine: e, Receipts: receipts}
}

func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Engine.Snapshot().Payments)
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	if payment.Currency == "" {
		payment.Currency = "ARS"
	}

	h.Engine.Dispatch(engine.AddPayment{Payment: payment})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

// UpdatePayment also covers collection: completing a pending payment with a
// lower amount closes it and leaves the shortfall as a new pending payment.
func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payment models.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	payment.ID = id

	state := h.Engine.Dispatch(engine.UpdatePayment{Payment: payment})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state.Payments)
}

func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.Engine.Dispatch(engine.DeletePayment{PaymentID: id})
	cache.InvalidateDashboard(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// GenerateMonthly books the month's rent for every active resident that does
// not already owe one. Safe to call repeatedly.
func (h *PaymentHandler) GenerateMonthly(w http.ResponseWriter, r *http.Request) {
	before := len(h.Engine.Snapshot().Payments)
	state := h.Engine.Dispatch(engine.GenerateMonthlyPayments{})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"generated": len(state.Payments) - before})
}

func (h *PaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	pdf, err := h.Receipts.GeneratePaymentReceipt(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="recibo-%s.pdf"`, id))
	w.Write(pdf)
}
