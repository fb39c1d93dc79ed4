package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/AleLoredo/TasksAPI/internal/middleware"
	"github.com/AleLoredo/TasksAPI/internal/models"
	"github.com/AleLoredo/TasksAPI/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TaskService defines the owner-scoped task operations required by the HTTP handlers.
type TaskService interface {
	// List retrieves all tasks owned by ownerID.
	List(ctx context.Context, ownerID int64) ([]models.Task, error)
	// Create persists a new incomplete task for ownerID.
	Create(ctx context.Context, ownerID int64, description string) (*models.Task, error)
	// Delete removes the task if owned by ownerID, else service.ErrTaskNotFound.
	Delete(ctx context.Context, ownerID, taskID int64) error
	// SetCompleted updates the completed flag if owned by ownerID, else service.ErrTaskNotFound.
	SetCompleted(ctx context.Context, ownerID, taskID int64, completed bool) error
}

// TaskHandler handles HTTP requests for task listing and mutation.
// Every operation is scoped to the session's user.
type TaskHandler struct {
	// Tasks performs the underlying task operations.
	Tasks TaskService
	// Log receives server-side detail for unexpected failures.
	Log *zap.Logger
}

// CreateTaskRequest represents the JSON payload for task creation.
type CreateTaskRequest struct {
	// Descripcion is the task text; trimmed before storage.
	Descripcion string `json:"descripcion"`
}

// UpdateTaskRequest represents the JSON payload for updating the completed flag.
// Completada is a pointer so a missing field is distinguishable from false.
type UpdateTaskRequest struct {
	Completada *bool `json:"completada"`
}

// List returns all tasks owned by the session user.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	tasks, err := h.Tasks.List(r.Context(), user.ID)
	if err != nil {
		h.Log.Error("list tasks failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Ocurrió un error inesperado")
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// Create adds a task for the session user.
// It expects a JSON body with a non-empty "descripcion" field.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "La descripción de la tarea es requerida")
		return
	}

	task, err := h.Tasks.Create(r.Context(), user.ID, req.Descripcion)
	if errors.Is(err, service.ErrValidation) {
		writeError(w, http.StatusBadRequest, "La descripción de la tarea es requerida")
		return
	}
	if err != nil {
		h.Log.Error("create task failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Ocurrió un error al agregar la tarea")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"mensaje":     "Tarea agregada exitosamente",
		"id_tarea":    task.ID,
		"descripcion": task.Description,
		"completada":  task.Completed,
	})
}

// Delete removes a task owned by the session user.
// A task that does not exist or belongs to someone else yields the same 404.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Tarea no encontrada o no tienes permiso para eliminarla")
		return
	}

	err = h.Tasks.Delete(r.Context(), user.ID, taskID)
	if errors.Is(err, service.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Tarea no encontrada o no tienes permiso para eliminarla")
		return
	}
	if err != nil {
		h.Log.Error("delete task failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Ocurrió un error al eliminar la tarea")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"mensaje": "Tarea eliminada exitosamente",
	})
}

// Update sets the completed flag on a task owned by the session user.
// The "completada" field must be present and boolean.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	taskID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Tarea no encontrada o no tienes permiso para actualizarla")
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Completada == nil {
		writeError(w, http.StatusBadRequest, "Se requiere el campo 'completada' (booleano)")
		return
	}

	err = h.Tasks.SetCompleted(r.Context(), user.ID, taskID, *req.Completada)
	if errors.Is(err, service.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "Tarea no encontrada o no tienes permiso para actualizarla")
		return
	}
	if err != nil {
		h.Log.Error("update task failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Ocurrió un error al actualizar la tarea")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"mensaje":    "Estado de la tarea actualizado",
		"id_tarea":   taskID,
		"completada": *req.Completada,
	})
}
