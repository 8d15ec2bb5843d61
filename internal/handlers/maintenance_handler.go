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

type MaintenanceHandler struct {
	Engine  *engine.Engine
	Storage *storage.Client
}

func NewMaintenanceHandler(e *engine.Engine, st *storage.Client) *MaintenanceHandler {
	return &MaintenanceHandler{Engine: e, Storage: st}
}

func (h *MaintenanceHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Engine.Snapshot().MaintenanceTasks)
}

func (h *MaintenanceHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var task models.MaintenanceTask
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if task.AssignedDate.IsZero() {
		task.AssignedDate = timeutil.Now()
	}

	h.Engine.Dispatch(engine.AddMaintenanceTask{Task: task})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
}

func (h *MaintenanceHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var task models.MaintenanceTask
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	task.ID = id

	state := h.Engine.Dispatch(engine.UpdateMaintenanceTask{Task: task})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(findTaskIn(state.MaintenanceTasks, id))
}

func (h *MaintenanceHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.Engine.Dispatch(engine.DeleteMaintenanceTask{TaskID: id})
	cache.InvalidateDashboard(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto attaches a photo to a task. Multipart field name: "file".
func (h *MaintenanceHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	task, ok := findTask(h.Engine.Snapshot().MaintenanceTasks, id)
	if !ok {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	key, err := h.Storage.Upload(r.Context(), "maintenance/"+id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			http.Error(w, "Photo storage not configured", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	task.Photos = append(task.Photos, fmt.Sprintf("/api/files/%s", key))
	h.Engine.Dispatch(engine.UpdateMaintenanceTask{Task: task})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
}

func findTask(tasks []models.MaintenanceTask, id string) (models.MaintenanceTask, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.MaintenanceTask{}, false
}

func findTaskIn(tasks []models.MaintenanceTask, id string) *models.MaintenanceTask {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}
