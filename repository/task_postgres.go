package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskify/taskify-api/models"
)

type postgresTaskRepository struct {
	uow *PostgresUnitOfWork
}

const taskColumns = "id, title, description, priority, status, due_date, created_at, user_id"

func (r *postgresTaskRepository) GetByID(ctx context.Context, id int) (*models.TaskItem, error) {
	var t models.TaskItem
	err := r.uow.exec().QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1", id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.DueDate, &t.CreatedAt, &t.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresTaskRepository) GetAllOrderedByDueDate(ctx context.Context, userID string) ([]models.TaskItem, error) {
	query := "SELECT " + taskColumns + " FROM tasks ORDER BY due_date"
	args := []any{}
	if userID != "" {
		query = "SELECT " + taskColumns + " FROM tasks WHERE user_id = $1 ORDER BY due_date"
		args = append(args, userID)
	}

	rows, err := r.uow.exec().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.TaskItem{}
	for rows.Next() {
		var t models.TaskItem
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.DueDate, &t.CreatedAt, &t.UserID); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (r *postgresTaskRepository) Create(ctx context.Context, task *models.TaskItem) error {
	return r.uow.exec().QueryRowContext(ctx,
		`INSERT INTO tasks (title, description, priority, status, due_date, created_at, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		task.Title, task.Description, task.Priority, task.Status, task.DueDate, task.CreatedAt, task.UserID,
	).Scan(&task.ID)
}

func (r *postgresTaskRepository) Update(ctx context.Context, task *models.TaskItem) error {
	_, err := r.uow.exec().ExecContext(ctx,
		`UPDATE tasks SET title = $1, description = $2, priority = $3, status = $4, due_date = $5
		 WHERE id = $6`,
		task.Title, task.Description, task.Priority, task.Status, task.DueDate, task.ID,
	)
	return err
}

func (r *postgresTaskRepository) Delete(ctx context.Context, id int) error {
	_, err := r.uow.exec().ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	return err
}
