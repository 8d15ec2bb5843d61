package handlers

import (
	"encoding/json"
	"net/http"

	"residencia-backend/internal/engine"
)

// StateHandler exposes the full application snapshot. The dashboard loads it
// once on startup and then follows the websocket stream.
type StateHandler struct {
	Engine *engine.Engine
}

func NewStateHandler(e *engine.Engine) *StateHandler {
	return &StateHandler{Engine: e}
}

func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Engine.Snapshot())
}
