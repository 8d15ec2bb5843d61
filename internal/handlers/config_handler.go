package handlers

import (
	"encoding/json"
	"net/http"

	"residencia-backend/internal/cache"
	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/timeutil"
)

type ConfigHandler struct {
	Engine *engine.Engine
}

func NewConfigHandler(e *engine.Engine) *ConfigHandler {
	return &ConfigHandler{Engine: e}
}

func (h *ConfigHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Engine.Snapshot().Configuration)
}

func (h *ConfigHandler) UpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	var cfg models.Configuration
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state := h.Engine.Dispatch(engine.UpdateConfiguration{Configuration: cfg})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state.Configuration)
}

func (h *ConfigHandler) GetPettyCash(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]float64{"petty_cash": h.Engine.Snapshot().PettyCash})
}

func (h *ConfigHandler) UpdatePettyCash(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state := h.Engine.Dispatch(engine.UpdatePettyCash{Amount: req.Amount})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]float64{"petty_cash": state.PettyCash})
}

// SaveMonthlyRates snapshots the current rates under the given month key,
// defaulting to the current month in Buenos Aires.
func (h *ConfigHandler) SaveMonthlyRates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month  string `json:"month"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Month == "" {
		req.Month = timeutil.MonthKey(timeutil.Now())
	}

	state := h.Engine.Dispatch(engine.SaveMonthlyRates{Month: req.Month, UserID: req.UserID})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state.Configuration.MonthlyHistory)
}
