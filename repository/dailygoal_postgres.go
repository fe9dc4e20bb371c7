package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/taskify/taskify-api/models"
)

type postgresDailyGoalRepository struct {
	uow *PostgresUnitOfWork
}

const goalColumns = "id, user_id, title, is_completed, created_at"

func (r *postgresDailyGoalRepository) GetByID(ctx context.Context, id int) (*models.DailyGoal, error) {
	var g models.DailyGoal
	err := r.uow.exec().QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM daily_goals WHERE id = $1", id,
	).Scan(&g.ID, &g.UserID, &g.Title, &g.IsCompleted, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *postgresDailyGoalRepository) GetByUser(ctx context.Context, userID string) ([]models.DailyGoal, error) {
	rows, err := r.uow.exec().QueryContext(ctx,
		"SELECT "+goalColumns+" FROM daily_goals WHERE user_id = $1 ORDER BY created_at DESC", userID,
	)
	if err != nil {
		return nil, err
	}
	return scanGoals(rows)
}

func (r *postgresDailyGoalRepository) GetTodayByUser(ctx context.Context, userID string, now time.Time) ([]models.DailyGoal, error) {
	start, end := models.DayWindow(now)
	rows, err := r.uow.exec().QueryContext(ctx,
		`SELECT `+goalColumns+` FROM daily_goals
		 WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	return scanGoals(rows)
}

func scanGoals(rows *sql.Rows) ([]models.DailyGoal, error) {
	defer rows.Close()

	goals := []models.DailyGoal{}
	for rows.Next() {
		var g models.DailyGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &g.IsCompleted, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func (r *postgresDailyGoalRepository) Create(ctx context.Context, goal *models.DailyGoal) error {
	return r.uow.exec().QueryRowContext(ctx,
		`INSERT INTO daily_goals (user_id, title, is_completed, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		goal.UserID, goal.Title, goal.IsCompleted, goal.CreatedAt,
	).Scan(&goal.ID)
}

func (r *postgresDailyGoalRepository) Update(ctx context.Context, goal *models.DailyGoal) error {
	_, err := r.uow.exec().ExecContext(ctx,
		"UPDATE daily_goals SET title = $1, is_completed = $2 WHERE id = $3",
		goal.Title, goal.IsCompleted, goal.ID,
	)
	return err
}

func (r *postgresDailyGoalRepository) Delete(ctx context.Context, id int) error {
	_, err := r.uow.exec().ExecContext(ctx, "DELETE FROM daily_goals WHERE id = $1", id)
	return err
}

func (r *postgresDailyGoalRepository) DeleteCompletedToday(ctx context.Context, userID string, now time.Time) error {
	start, end := models.DayWindow(now)
	_, err := r.uow.exec().ExecContext(ctx,
		`DELETE FROM daily_goals
		 WHERE user_id = $1 AND is_completed AND created_at >= $2 AND created_at < $3`,
		userID, start, end,
	)
	return err
}
