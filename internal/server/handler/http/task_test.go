package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AleLoredo/TasksAPI/internal/middleware"
	"github.com/AleLoredo/TasksAPI/internal/models"
	handler "github.com/AleLoredo/TasksAPI/internal/server/handler/http"
	"github.com/AleLoredo/TasksAPI/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// fakeTaskService implements handler.TaskService for testing.
type fakeTaskService struct {
	tasks   []models.Task
	listErr error

	created   *models.Task
	createErr error

	deleteErr error
	setErr    error

	gotOwnerID   int64
	gotTaskID    int64
	gotCompleted bool
}

func (f *fakeTaskService) List(ctx context.Context, ownerID int64) ([]models.Task, error) {
	f.gotOwnerID = ownerID
	return f.tasks, f.listErr
}

func (f *fakeTaskService) Create(ctx context.Context, ownerID int64, description string) (*models.Task, error) {
	f.gotOwnerID = ownerID
	return f.created, f.createErr
}

func (f *fakeTaskService) Delete(ctx context.Context, ownerID, taskID int64) error {
	f.gotOwnerID, f.gotTaskID = ownerID, taskID
	return f.deleteErr
}

func (f *fakeTaskService) SetCompleted(ctx context.Context, ownerID, taskID int64, completed bool) error {
	f.gotOwnerID, f.gotTaskID, f.gotCompleted = ownerID, taskID, completed
	return f.setErr
}

// taskRouter mounts the handler on real routes so chi URL params resolve,
// with the given user preinstalled in the request context.
func taskRouter(h *handler.TaskHandler, user *models.User) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUser(req.Context(), user)))
		})
	})
	r.Get("/api/tareas", h.List)
	r.Post("/api/tareas", h.Create)
	r.Delete("/api/tareas/{id}", h.Delete)
	r.Put("/api/tareas/{id}", h.Update)
	return r
}

func TestTaskHandler_List(t *testing.T) {
	alice := &models.User{ID: 5, Username: "alice"}
	svc := &fakeTaskService{tasks: []models.Task{
		{ID: 1, Description: "buy milk", Completed: false},
		{ID: 2, Description: "write report", Completed: true},
	}}
	r := taskRouter(&handler.TaskHandler{Tasks: svc, Log: zap.NewNop()}, alice)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/tareas", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotOwnerID != 5 {
		t.Errorf("List scoped to owner %d; want 5", svc.gotOwnerID)
	}

	var tasks []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&tasks); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0]["descripcion"] != "buy milk" || tasks[0]["completada"] != false {
		t.Errorf("tasks[0] = %v; want buy milk, incomplete", tasks[0])
	}
	if _, leaked := tasks[0]["OwnerID"]; leaked {
		t.Error("owner id leaked into the JSON payload")
	}
}

func TestTaskHandler_Create(t *testing.T) {
	alice := &models.User{ID: 5, Username: "alice"}

	tests := []struct {
		name           string
		body           string
		svc            *fakeTaskService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `{{`,
			svc:            &fakeTaskService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "descripción de la tarea es requerida",
		},
		{
			name:           "blank description",
			body:           `{"descripcion":"   "}`,
			svc:            &fakeTaskService{createErr: service.ErrValidation},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "descripción de la tarea es requerida",
		},
		{
			name:           "service error",
			body:           `{"descripcion":"buy milk"}`,
			svc:            &fakeTaskService{createErr: errors.New("db down")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "error al agregar la tarea",
		},
		{
			name: "success",
			body: `{"descripcion":"buy milk"}`,
			svc: &fakeTaskService{created: &models.Task{
				ID: 11, Description: "buy milk", Completed: false, OwnerID: 5,
			}},
			expectedCode:   http.StatusCreated,
			expectedSubstr: "Tarea agregada exitosamente",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := taskRouter(&handler.TaskHandler{Tasks: tt.svc, Log: zap.NewNop()}, alice)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/tareas", bytes.NewBufferString(tt.body))
			r.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !bytes.Contains(rec.Body.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestTaskHandler_Create_PayloadShape(t *testing.T) {
	alice := &models.User{ID: 5, Username: "alice"}
	svc := &fakeTaskService{created: &models.Task{ID: 11, Description: "buy milk", OwnerID: 5}}
	r := taskRouter(&handler.TaskHandler{Tasks: svc, Log: zap.NewNop()}, alice)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/tareas", bytes.NewBufferString(`{"descripcion":"buy milk"}`))
	r.ServeHTTP(rec, req)

	var payload map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if payload["id_tarea"] != float64(11) {
		t.Errorf("id_tarea = %v; want 11", payload["id_tarea"])
	}
	if payload["completada"] != false {
		t.Errorf("completada = %v; new tasks must start incomplete", payload["completada"])
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	alice := &models.User{ID: 5, Username: "alice"}

	tests := []struct {
		name         string
		path         string
		svc          *fakeTaskService
		expectedCode int
	}{
		{
			name:         "non-numeric id",
			path:         "/api/tareas/abc",
			svc:          &fakeTaskService{},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "not found or foreign",
			path:         "/api/tareas/99",
			svc:          &fakeTaskService{deleteErr: service.ErrTaskNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "service error",
			path:         "/api/tareas/11",
			svc:          &fakeTaskService{deleteErr: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "success",
			path:         "/api/tareas/11",
			svc:          &fakeTaskService{},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := taskRouter(&handler.TaskHandler{Tasks: tt.svc, Log: zap.NewNop()}, alice)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("DELETE", tt.path, nil)
			r.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestTaskHandler_Update(t *testing.T) {
	alice := &models.User{ID: 5, Username: "alice"}

	tests := []struct {
		name           string
		path           string
		body           string
		svc            *fakeTaskService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "missing completada",
			path:           "/api/tareas/11",
			body:           `{}`,
			svc:            &fakeTaskService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Se requiere el campo 'completada'",
		},
		{
			name:           "non-boolean completada",
			path:           "/api/tareas/11",
			body:           `{"completada":"yes"}`,
			svc:            &fakeTaskService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Se requiere el campo 'completada'",
		},
		{
			name:           "not found or foreign",
			path:           "/api/tareas/99",
			body:           `{"completada":true}`,
			svc:            &fakeTaskService{setErr: service.ErrTaskNotFound},
			expectedCode:   http.StatusNotFound,
			expectedSubstr: "Tarea no encontrada",
		},
		{
			name:           "success",
			path:           "/api/tareas/11",
			body:           `{"completada":true}`,
			svc:            &fakeTaskService{},
			expectedCode:   http.StatusOK,
			expectedSubstr: "Estado de la tarea actualizado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := taskRouter(&handler.TaskHandler{Tasks: tt.svc, Log: zap.NewNop()}, alice)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", tt.path, bytes.NewBufferString(tt.body))
			r.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !bytes.Contains(rec.Body.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestTaskHandler_Update_EchoesNewState(t *testing.T) {
	alice := &models.User{ID: 5, Username: "alice"}
	svc := &fakeTaskService{}
	r := taskRouter(&handler.TaskHandler{Tasks: svc, Log: zap.NewNop()}, alice)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/tareas/11", bytes.NewBufferString(`{"completada":true}`))
	r.ServeHTTP(rec, req)

	if svc.gotTaskID != 11 || !svc.gotCompleted {
		t.Errorf("SetCompleted got (%d, %v); want (11, true)", svc.gotTaskID, svc.gotCompleted)
	}

	var payload map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if payload["id_tarea"] != float64(11) || payload["completada"] != true {
		t.Errorf("payload = %v; want id_tarea=11 completada=true", payload)
	}
}
