package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AleLoredo/TasksAPI/internal/models"
	"github.com/AleLoredo/TasksAPI/internal/service"
)

// dummyHandler is a placeholder that records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

// fakeResolver implements SessionResolver for testing.
type fakeResolver struct {
	user *models.User
	err  error
}

func (f *fakeResolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	return f.user, f.err
}

func TestSessionAuth_NoCookie(t *testing.T) {
	dummy := &dummyHandler{}
	h := SessionAuth(&fakeResolver{})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/tareas", nil)
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called without a session cookie")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("401 body is not JSON: %v", err)
	}
	if payload["error"] == "" {
		t.Error("expected a JSON error message in the 401 body")
	}
}

func TestSessionAuth_UnknownToken(t *testing.T) {
	dummy := &dummyHandler{}
	h := SessionAuth(&fakeResolver{err: service.ErrSessionNotFound})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/tareas", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "bogus"})
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called for an unknown token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	dummy := &dummyHandler{}
	h := SessionAuth(&fakeResolver{err: service.ErrSessionExpired})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/tareas", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestSessionAuth_ResolverError(t *testing.T) {
	dummy := &dummyHandler{}
	h := SessionAuth(&fakeResolver{err: errors.New("db down")})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/tareas", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok"})
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called on a resolver failure")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestSessionAuth_ValidToken(t *testing.T) {
	user := &models.User{ID: 5, Username: "alice"}
	dummy := &dummyHandler{}
	h := SessionAuth(&fakeResolver{user: user})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/tareas", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok"})
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Fatal("expected next handler to be called for a valid token")
	}
	got := UserFromContext(dummy.ctx)
	if got == nil || got.ID != 5 || got.Username != "alice" {
		t.Errorf("UserFromContext = %+v; want alice/5", got)
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	if got := UserFromContext(context.Background()); got != nil {
		t.Errorf("UserFromContext on empty context = %+v; want nil", got)
	}
}
