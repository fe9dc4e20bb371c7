package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskify/taskify-api/models"
	"github.com/taskify/taskify-api/repository"
)

// InternalTaskHandler serves the agent-facing task API. Authentication is
// the shared-secret middleware; these handlers trust the userId path param.
// Each request gets its own unit of work from the factory.
type InternalTaskHandler struct {
	newUoW repository.UnitOfWorkFactory
}

// NewInternalTaskHandler wires the handler.
func NewInternalTaskHandler(newUoW repository.UnitOfWorkFactory) *InternalTaskHandler {
	return &InternalTaskHandler{newUoW: newUoW}
}

type internalTask struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	IsOverdue   bool      `json:"isOverdue"`
}

type internalTaskListResponse struct {
	Tasks             []internalTask `json:"tasks"`
	TotalCount        int            `json:"totalCount"`
	OverdueCount      int            `json:"overdueCount"`
	CompletedThisWeek int            `json:"completedThisWeek"`
	PendingCount      int            `json:"pendingCount"`
	HighPriorityCount int            `json:"highPriorityCount"`
}

type internalCreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// GetTasksByUser lists a user's tasks by due date with summary aggregates.
func (h *InternalTaskHandler) GetTasksByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	now := time.Now().UTC()

	tasks, err := h.newUoW().Tasks().GetAllOrderedByDueDate(c.Context(), userID)
	if err != nil {
		return serverError(c, err)
	}

	weekStart, weekEnd := models.WeekWindow(now)

	response := internalTaskListResponse{
		Tasks:      make([]internalTask, 0, len(tasks)),
		TotalCount: len(tasks),
	}
	for i := range tasks {
		t := &tasks[i]
		overdue := t.IsOverdue(now)
		response.Tasks = append(response.Tasks, internalTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Priority:    t.Priority,
			Status:      t.Status,
			DueDate:     t.DueDate,
			CreatedAt:   t.CreatedAt,
			IsOverdue:   overdue,
		})

		if overdue {
			response.OverdueCount++
		}
		if t.Status == models.StatusCompleted && !t.CreatedAt.Before(weekStart) && t.CreatedAt.Before(weekEnd) {
			response.CompletedThisWeek++
		}
		if t.Status == models.StatusTodo || t.Status == models.StatusInProgress {
			response.PendingCount++
		}
		if t.Priority == models.PriorityHigh && t.Status != models.StatusCompleted {
			response.HighPriorityCount++
		}
	}

	return c.JSON(response)
}

// CreateTaskForUser creates a task on the agent's behalf. Every field is
// optional; blanks fall back to defaults and an unparsable due date becomes
// tomorrow at 23:59:59.
func (h *InternalTaskHandler) CreateTaskForUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req internalCreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	now := time.Now().UTC()

	title := req.Title
	if title == "" {
		title = "New Task"
	}

	task := &models.TaskItem{
		Title:       title,
		Description: req.Description,
		Priority:    models.ParsePriority(req.Priority),
		Status:      models.StatusTodo,
		DueDate:     models.ParseLenientDueDate(req.DueDate, now),
		CreatedAt:   now,
		UserID:      userID,
	}

	if err := h.newUoW().Tasks().Create(c.Context(), task); err != nil {
		return serverError(c, err)
	}

	log.Printf("created task %d for user %s via agent", task.ID, userID)

	return c.Status(fiber.StatusCreated).JSON(internalTask{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		IsOverdue:   false,
	})
}
