package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/taskify/taskify-api/models"
)

type postgresFocusSessionRepository struct {
	uow *PostgresUnitOfWork
}

const sessionColumns = "id, user_id, duration_minutes, breaks_taken, is_completed, started_at, ended_at"

func (r *postgresFocusSessionRepository) GetByID(ctx context.Context, id int) (*models.FocusSession, error) {
	var s models.FocusSession
	err := r.uow.exec().QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM focus_sessions WHERE id = $1", id,
	).Scan(&s.ID, &s.UserID, &s.DurationMinutes, &s.BreaksTaken, &s.IsCompleted, &s.StartedAt, &s.EndedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresFocusSessionRepository) GetByUser(ctx context.Context, userID string) ([]models.FocusSession, error) {
	rows, err := r.uow.exec().QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM focus_sessions WHERE user_id = $1 ORDER BY started_at DESC", userID,
	)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func (r *postgresFocusSessionRepository) GetByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.FocusSession, error) {
	rows, err := r.uow.exec().QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM focus_sessions
		 WHERE user_id = $1 AND started_at >= $2 AND started_at < $3
		 ORDER BY started_at DESC`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]models.FocusSession, error) {
	defer rows.Close()

	sessions := []models.FocusSession{}
	for rows.Next() {
		var s models.FocusSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.DurationMinutes, &s.BreaksTaken, &s.IsCompleted, &s.StartedAt, &s.EndedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func (r *postgresFocusSessionRepository) Create(ctx context.Context, session *models.FocusSession) error {
	return r.uow.exec().QueryRowContext(ctx,
		`INSERT INTO focus_sessions (user_id, duration_minutes, breaks_taken, is_completed, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		session.UserID, session.DurationMinutes, session.BreaksTaken, session.IsCompleted, session.StartedAt, session.EndedAt,
	).Scan(&session.ID)
}

func (r *postgresFocusSessionRepository) Update(ctx context.Context, session *models.FocusSession) error {
	_, err := r.uow.exec().ExecContext(ctx,
		`UPDATE focus_sessions SET duration_minutes = $1, breaks_taken = $2, is_completed = $3, ended_at = $4
		 WHERE id = $5`,
		session.DurationMinutes, session.BreaksTaken, session.IsCompleted, session.EndedAt, session.ID,
	)
	return err
}

func (r *postgresFocusSessionRepository) Delete(ctx context.Context, id int) error {
	_, err := r.uow.exec().ExecContext(ctx, "DELETE FROM focus_sessions WHERE id = $1", id)
	return err
}
