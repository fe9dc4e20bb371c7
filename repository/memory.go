package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taskify/taskify-api/models"
)

// MemoryUnitOfWork is an in-memory UnitOfWork used by tests. Transactions
// are accepted but not isolated; every write applies immediately.
type MemoryUnitOfWork struct {
	mu sync.Mutex

	users         map[string]models.User
	tasks         map[int]models.TaskItem
	goals         map[int]models.DailyGoal
	sessions      map[int]models.FocusSession
	nextTaskID    int
	nextGoalID    int
	nextSessionID int
}

// NewMemoryUnitOfWork returns an empty in-memory store.
func NewMemoryUnitOfWork() *MemoryUnitOfWork {
	return &MemoryUnitOfWork{
		users:         make(map[string]models.User),
		tasks:         make(map[int]models.TaskItem),
		goals:         make(map[int]models.DailyGoal),
		sessions:      make(map[int]models.FocusSession),
		nextTaskID:    1,
		nextGoalID:    1,
		nextSessionID: 1,
	}
}

func (u *MemoryUnitOfWork) Users() UserRepository                 { return &memoryUserRepo{u} }
func (u *MemoryUnitOfWork) Tasks() TaskRepository                 { return &memoryTaskRepo{u} }
func (u *MemoryUnitOfWork) DailyGoals() DailyGoalRepository       { return &memoryGoalRepo{u} }
func (u *MemoryUnitOfWork) FocusSessions() FocusSessionRepository { return &memorySessionRepo{u} }

func (u *MemoryUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *MemoryUnitOfWork) Commit() error                   { return nil }
func (u *MemoryUnitOfWork) Rollback() error                 { return nil }

type memoryUserRepo struct {
	u *MemoryUnitOfWork
}

func (r *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	stored := *user
	stored.Email = strings.ToLower(stored.Email)
	r.u.users[stored.ID] = stored
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if user, ok := r.u.users[id]; ok {
		copied := user
		copied.Roles = append([]string(nil), user.Roles...)
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, user := range r.u.users {
		if user.Email == strings.ToLower(email) {
			copied := user
			copied.Roles = append([]string(nil), user.Roles...)
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) Update(ctx context.Context, user *models.User) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	existing, ok := r.u.users[user.ID]
	if !ok {
		return nil
	}
	updated := *user
	updated.Email = strings.ToLower(updated.Email)
	updated.Roles = existing.Roles
	r.u.users[user.ID] = updated
	return nil
}

func (r *memoryUserRepo) AddRole(ctx context.Context, userID, role string) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	user, ok := r.u.users[userID]
	if !ok {
		return nil
	}
	for _, existing := range user.Roles {
		if existing == role {
			return nil
		}
	}
	user.Roles = append(user.Roles, role)
	r.u.users[userID] = user
	return nil
}

type memoryTaskRepo struct {
	u *MemoryUnitOfWork
}

func (r *memoryTaskRepo) GetByID(ctx context.Context, id int) (*models.TaskItem, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if task, ok := r.u.tasks[id]; ok {
		copied := task
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryTaskRepo) GetAllOrderedByDueDate(ctx context.Context, userID string) ([]models.TaskItem, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	tasks := []models.TaskItem{}
	for _, task := range r.u.tasks {
		if userID == "" || task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) })
	return tasks, nil
}

func (r *memoryTaskRepo) Create(ctx context.Context, task *models.TaskItem) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	task.ID = r.u.nextTaskID
	r.u.nextTaskID++
	r.u.tasks[task.ID] = *task
	return nil
}

func (r *memoryTaskRepo) Update(ctx context.Context, task *models.TaskItem) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.tasks[task.ID]; ok {
		r.u.tasks[task.ID] = *task
	}
	return nil
}

func (r *memoryTaskRepo) Delete(ctx context.Context, id int) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	delete(r.u.tasks, id)
	return nil
}

type memoryGoalRepo struct {
	u *MemoryUnitOfWork
}

func (r *memoryGoalRepo) GetByID(ctx context.Context, id int) (*models.DailyGoal, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if goal, ok := r.u.goals[id]; ok {
		copied := goal
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryGoalRepo) GetByUser(ctx context.Context, userID string) ([]models.DailyGoal, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	goals := []models.DailyGoal{}
	for _, goal := range r.u.goals {
		if goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].CreatedAt.After(goals[j].CreatedAt) })
	return goals, nil
}

func (r *memoryGoalRepo) GetTodayByUser(ctx context.Context, userID string, now time.Time) ([]models.DailyGoal, error) {
	start, end := models.DayWindow(now)
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	goals := []models.DailyGoal{}
	for _, goal := range r.u.goals {
		if goal.UserID == userID && !goal.CreatedAt.Before(start) && goal.CreatedAt.Before(end) {
			goals = append(goals, goal)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].CreatedAt.Before(goals[j].CreatedAt) })
	return goals, nil
}

func (r *memoryGoalRepo) Create(ctx context.Context, goal *models.DailyGoal) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	goal.ID = r.u.nextGoalID
	r.u.nextGoalID++
	r.u.goals[goal.ID] = *goal
	return nil
}

func (r *memoryGoalRepo) Update(ctx context.Context, goal *models.DailyGoal) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.goals[goal.ID]; ok {
		r.u.goals[goal.ID] = *goal
	}
	return nil
}

func (r *memoryGoalRepo) Delete(ctx context.Context, id int) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	delete(r.u.goals, id)
	return nil
}

func (r *memoryGoalRepo) DeleteCompletedToday(ctx context.Context, userID string, now time.Time) error {
	start, end := models.DayWindow(now)
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for id, goal := range r.u.goals {
		if goal.UserID == userID && goal.IsCompleted && !goal.CreatedAt.Before(start) && goal.CreatedAt.Before(end) {
			delete(r.u.goals, id)
		}
	}
	return nil
}

type memorySessionRepo struct {
	u *MemoryUnitOfWork
}

func (r *memorySessionRepo) GetByID(ctx context.Context, id int) (*models.FocusSession, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if session, ok := r.u.sessions[id]; ok {
		copied := session
		return &copied, nil
	}
	return nil, nil
}

func (r *memorySessionRepo) GetByUser(ctx context.Context, userID string) ([]models.FocusSession, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	sessions := []models.FocusSession{}
	for _, session := range r.u.sessions {
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartedAt.After(sessions[j].StartedAt) })
	return sessions, nil
}

func (r *memorySessionRepo) GetByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]models.FocusSession, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	sessions := []models.FocusSession{}
	for _, session := range r.u.sessions {
		if session.UserID == userID && !session.StartedAt.Before(start) && session.StartedAt.Before(end) {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartedAt.After(sessions[j].StartedAt) })
	return sessions, nil
}

func (r *memorySessionRepo) Create(ctx context.Context, session *models.FocusSession) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	session.ID = r.u.nextSessionID
	r.u.nextSessionID++
	r.u.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepo) Update(ctx context.Context, session *models.FocusSession) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.sessions[session.ID]; ok {
		r.u.sessions[session.ID] = *session
	}
	return nil
}

func (r *memorySessionRepo) Delete(ctx context.Context, id int) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	delete(r.u.sessions, id)
	return nil
}
