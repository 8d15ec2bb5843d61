package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"residencia-backend/internal/storage"
)

// FileHandler streams stored documents and photos back out of object
// storage. Keys are opaque paths generated at upload time.
type FileHandler struct {
	Storage *storage.Client
}

func NewFileHandler(st *storage.Client) *FileHandler {
	return &FileHandler{Storage: st}
}

func (h *FileHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	body, contentType, err := h.Storage.Fetch(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrDisabled) {
			http.Error(w, "File storage not configured", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer body.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	io.Copy(w, body)
}
