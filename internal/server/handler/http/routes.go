// Package http provides HTTP routing and middleware configuration
// for the task-list service.
package http

import (
	"net/http"

	"github.com/AleLoredo/TasksAPI/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the task-list API. It applies JSON content-type enforcement and
// request logging globally, and gates every task and session endpoint
// behind session authentication.
//
// Routes:
//
//	POST   /api/registro     → authHandler.Register
//	POST   /api/login        → authHandler.Login
//	POST   /api/logout       → authHandler.Logout  (session)
//	GET    /api/status       → authHandler.Status  (session)
//	GET    /api/tareas       → taskHandler.List    (session)
//	POST   /api/tareas       → taskHandler.Create  (session)
//	DELETE /api/tareas/{id}  → taskHandler.Delete  (session)
//	PUT    /api/tareas/{id}  → taskHandler.Update  (session)
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	sessions middleware.SessionResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/registro", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a valid session cookie
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(sessions))

			r.Post("/logout", authHandler.Logout)
			r.Get("/status", authHandler.Status)
			r.Get("/tareas", taskHandler.List)
			r.Post("/tareas", taskHandler.Create)
			r.Delete("/tareas/{id}", taskHandler.Delete)
			r.Put("/tareas/{id}", taskHandler.Update)
		})
	})

	return r
}
