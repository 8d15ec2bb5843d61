package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"residencia-backend/internal/cache"
	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/storage"
	"residencia-backend/internal/timeutil"
)

type ResidentHandler struct {
	Engine  *engine.Engine
	Storage *storage.Client
}

func NewResidentHandler(e *engine.Engine, st *storage.Client) *ResidentHandler {
	return &ResidentHandler{Engine: e, Storage: st}
}

func (h *ResidentHandler) ListResidents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Engine.Snapshot().Residents)
}

func (h *ResidentHandler) GetResident(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	resident, ok := h.findResident(id)
	if !ok {
		http.Error(w, "Resident not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resident)
}

func (h *ResidentHandler) CreateResident(w http.ResponseWriter, r *http.Request) {
	var resident models.Resident
	if err := json.NewDecoder(r.Body).Decode(&resident); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if resident.ID == "" {
		resident.ID = uuid.NewString()
	}
	if resident.Status == "" {
		resident.Status = models.ResidentStatusActive
	}

	h.Engine.Dispatch(engine.AddResident{Resident: resident})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resident)
}

func (h *ResidentHandler) UpdateResident(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var resident models.Resident
	if err := json.NewDecoder(r.Body).Decode(&resident); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	resident.ID = id

	h.Engine.Dispatch(engine.UpdateResident{Resident: resident})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resident)
}

func (h *ResidentHandler) DeleteResident(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.Engine.Dispatch(engine.DeleteResident{ResidentID: id})
	cache.InvalidateDashboard(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// UploadDocument stores a file in object storage and appends it to the
// resident's document list. Multipart field name: "file".
func (h *ResidentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	resident, ok := h.findResident(id)
	if !ok {
		http.Error(w, "Resident not found", http.StatusNotFound)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	key, err := h.Storage.Upload(r.Context(), "documents/"+id, header.Filename, contentType, file)
	if err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			http.Error(w, "Document storage not configured", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	doc := models.Document{
		ID:         uuid.NewString(),
		Name:       header.Filename,
		Type:       contentType,
		URL:        fmt.Sprintf("/api/files/%s", key),
		UploadDate: timeutil.Now(),
	}
	resident.Documents = append(resident.Documents, doc)
	h.Engine.Dispatch(engine.UpdateResident{Resident: resident})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func (h *ResidentHandler) findResident(id string) (models.Resident, bool) {
	for _, resident := range h.Engine.Snapshot().Residents {
		if resident.ID == id {
			return resident, true
		}
	}
	return models.Resident{}, false
}
