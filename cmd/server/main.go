// Package main initializes and starts the task-list API server,
// setting up configuration, logging, the database connection,
// repositories, services and HTTP handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/AleLoredo/TasksAPI/internal/config"
	"github.com/AleLoredo/TasksAPI/internal/db"
	"github.com/AleLoredo/TasksAPI/internal/logger"
	"github.com/AleLoredo/TasksAPI/internal/repository"
	"github.com/AleLoredo/TasksAPI/internal/server/handler/http"
	"github.com/AleLoredo/TasksAPI/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dsn := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(dsn)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Purge expired sessions in the background.
	db.StartSessionCleaner(context.Background(), postgresDB,
		time.Hour, // interval
		zapLogger,
	)

	// Initialize repositories for users, sessions and tasks.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	sessionRepo := repository.NewPostgresSessionRepository(postgresDB)
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo)
	sessionService := service.NewSessionService(
		sessionRepo,
		authRepo,
		time.Duration(options.SessionTTLHours)*time.Hour,
		time.Duration(options.RememberTTLHours)*time.Hour,
	)
	taskService := service.NewTaskService(taskRepo)

	// Create HTTP handlers for auth and task endpoints.
	authHandler := &http.AuthHandler{Auth: authService, Sessions: sessionService, Log: zapLogger}
	taskHandler := &http.TaskHandler{Tasks: taskService, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, taskHandler, sessionService, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
