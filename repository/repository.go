package repository

import (
	"context"
	"time"

	"github.com/taskify/taskify-api/models"
)

// UserRepository persists accounts and their role assignments.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	AddRole(ctx context.Context, userID, role string) error
}

// TaskRepository persists tasks.
type TaskRepository interface {
	GetByID(ctx context.Context, id int) (*models.TaskItem, error)
	// GetAllOrderedByDueDate returns tasks ordered by due date ascending.
	// An empty userID means no owner filter (admin listing).
	GetAllOrderedByDueDate(ctx context.Context, userID string) ([]models.TaskItem, error)
	Create(ctx context.Context, task *models.TaskItem) error
	Update(ctx context.Context, task *models.TaskItem) error
	Delete(ctx context.Context, id int) error
}

// DailyGoalRepository persists daily goals.
type DailyGoalRepository interface {
	GetByID(ctx context.Context, id int) (*models.DailyGoal, error)
	GetByUser(ctx context.Context, userID string) ([]models.DailyGoal, error)
	// GetTodayByUser returns goals created within the UTC day containing now.
	GetTodayByUser(ctx context.Context, userID string, now time.Time) ([]models.DailyGoal, error)
	Create(ctx context.Context, goal *models.DailyGoal) error
	Update(ctx context.Context, goal *models.DailyGoal) error
	Delete(ctx context.Context, id int) error
	// DeleteCompletedToday removes the user's completed goals created within
	// the UTC day containing now, in one statement.
	DeleteCompletedToday(ctx context.Context, userID string, now time.Time) error
}

// FocusSessionRepository persists focus sessions.
type FocusSessionRepository interface {
	GetByID(ctx context.Context, id int) (*models.FocusSession, error)
	// GetByUser returns sessions ordered by start time descending.
	GetByUser(ctx context.Context, userID string) ([]models.FocusSession, error)
	// GetByUserAndRange returns sessions with startedAt in [start, end).
	GetByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.FocusSession, error)
	Create(ctx context.Context, session *models.FocusSession) error
	Update(ctx context.Context, session *models.FocusSession) error
	Delete(ctx context.Context, id int) error
}

// UnitOfWork groups the repositories behind one connection. Writes outside
// an explicit transaction execute immediately; callers needing atomicity
// across repositories bracket their work with Begin/Commit/Rollback.
type UnitOfWork interface {
	Users() UserRepository
	Tasks() TaskRepository
	DailyGoals() DailyGoalRepository
	FocusSessions() FocusSessionRepository

	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
}
