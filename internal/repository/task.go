package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AleLoredo/TasksAPI/internal/models"
)

// PostgresTaskRepository implements task persistence using a PostgreSQL database.
// Every query is scoped by the owning user id; a task belonging to another
// user behaves exactly like a missing one.
type PostgresTaskRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTaskRepository creates a new PostgresTaskRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{DB: db}
}

// ListByOwner fetches all tasks belonging to the given user.
//
//	ctx:     context for cancellation and deadlines
//	ownerID: identifier of the owning user
//
// Returns a slice of models.Task or an error if the query or scanning fails.
func (r *PostgresTaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Task, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, descripcion, completada, usuario_id FROM tareas WHERE usuario_id = $1
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListByOwner: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &t.OwnerID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask inserts a new incomplete task for the given user and returns its id.
func (r *PostgresTaskRepository) CreateTask(ctx context.Context, ownerID int64, description string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO tareas (descripcion, completada, usuario_id) VALUES ($1, FALSE, $2) RETURNING id
	`, description, ownerID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	return id, nil
}

// DeleteTask removes the task only if it exists and belongs to ownerID.
// Reports whether a row was removed.
func (r *PostgresTaskRepository) DeleteTask(ctx context.Context, ownerID, taskID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM tareas WHERE id = $1 AND usuario_id = $2
	`, taskID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task rows affected: %w", err)
	}
	return rows > 0, nil
}

// SetCompleted updates the completed flag of the task only if it exists and
// belongs to ownerID. Reports whether a row was updated.
func (r *PostgresTaskRepository) SetCompleted(ctx context.Context, ownerID, taskID int64, completed bool) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE tareas SET completada = $1 WHERE id = $2 AND usuario_id = $3
	`, completed, taskID, ownerID)
	if err != nil {
		return false, fmt.Errorf("set completed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set completed rows affected: %w", err)
	}
	return rows > 0, nil
}
