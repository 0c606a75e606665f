package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskmanager/internal/models"
	"taskmanager/internal/store"
)

// DeleteResponse is the body returned by DeleteTask.
type DeleteResponse struct {
	Message string `json:"message"`
}

// DeletedMessage is returned whether or not the task existed.
const DeletedMessage = "Task deleted"

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 100 << 10

// ListTasks returns every persisted task.
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context())
	if err != nil {
		h.respondServerError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	h.respondJSON(w, http.StatusOK, tasks)
}

// CreateTask persists a new task and returns it with its assigned id.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input models.NewTask
	if !h.decodeBody(w, r, &input) {
		return
	}

	if err := input.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task := input.Task()
	if err := h.store.CreateTask(r.Context(), task); err != nil {
		h.respondServerError(w, r, err)
		return
	}

	h.logger.Debug("task created", "id", task.ID)
	h.respondJSON(w, http.StatusOK, task)
}

// UpdateTask applies a partial update. An unknown id answers 200 with a
// null body.
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.TaskPatch
	if !h.decodeBody(w, r, &patch) {
		return
	}

	if err := patch.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.store.UpdateTask(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.logger.Debug("update of unknown task", "id", id)
			h.respondJSON(w, http.StatusOK, nil)
			return
		}
		h.respondServerError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task. The response is the same whether or not the
// task existed.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteTask(r.Context(), id); err != nil {
		h.respondServerError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, DeleteResponse{Message: DeletedMessage})
}

// decodeBody reads a JSON body of at most maxBodyBytes into v. On failure it
// writes the error response and returns false.
func (h *Handlers) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		h.respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
