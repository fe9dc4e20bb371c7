package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskify/taskify-api/middleware"
	"github.com/taskify/taskify-api/models"
	"github.com/taskify/taskify-api/repository"
	"github.com/taskify/taskify-api/utils"
)

// TaskHandler serves owner-scoped task CRUD. Each request gets its own
// unit of work from the factory.
type TaskHandler struct {
	newUoW repository.UnitOfWorkFactory
}

// NewTaskHandler wires the handler.
func NewTaskHandler(newUoW repository.UnitOfWorkFactory) *TaskHandler {
	return &TaskHandler{newUoW: newUoW}
}

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	DueTime     string `json:"dueTime"`
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

type taskDueDateRequest struct {
	DueDate string `json:"dueDate"`
	DueTime string `json:"dueTime"`
}

type taskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	CreatedAt   string `json:"createdAt"`
}

func toTaskResponse(t *models.TaskItem) taskResponse {
	return taskResponse{
		ID:          fmt.Sprintf("%d", t.ID),
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     t.DueDate.UTC().Format("2006-01-02"),
		CreatedAt:   t.CreatedAt.UTC().Format("2006-01-02"),
	}
}

// GetAll lists tasks ordered by due date. Admins see every task, everyone
// else only their own.
func (h *TaskHandler) GetAll(c *fiber.Ctx) error {
	userID, _, isAdmin := middleware.Principal(c)

	filter := userID
	if isAdmin {
		filter = ""
	}

	tasks, err := h.newUoW().Tasks().GetAllOrderedByDueDate(c.Context(), filter)
	if err != nil {
		return serverError(c, err)
	}

	response := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		response = append(response, toTaskResponse(&tasks[i]))
	}
	return c.JSON(response)
}

// GetByID returns one task, 404 if absent, 403 if the caller is neither
// owner nor admin.
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
	task, errResp := h.loadOwned(c, h.newUoW(), "access")
	if task == nil {
		return errResp
	}
	return c.JSON(toTaskResponse(task))
}

// Create stores a new task owned by the caller.
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if msg := validateTaskRequest(&req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
	}

	dueDate, err := models.CombineDueDate(req.DueDate, req.DueTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid due date"})
	}

	task := &models.TaskItem{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.ParsePriority(req.Priority),
		Status:      models.ParseStatus(req.Status),
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
		UserID:      userID,
	}

	if err := h.newUoW().Tasks().Create(c.Context(), task); err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(task))
}

// Update replaces title, description, priority, status, and due date.
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	uow := h.newUoW()
	task, errResp := h.loadOwned(c, uow, "update")
	if task == nil {
		return errResp
	}

	var req taskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if msg := validateTaskRequest(&req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
	}

	dueDate, err := models.CombineDueDate(req.DueDate, req.DueTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid due date"})
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Priority = models.ParsePriority(req.Priority)
	task.Status = models.ParseStatus(req.Status)
	task.DueDate = dueDate

	if err := uow.Tasks().Update(c.Context(), task); err != nil {
		return serverError(c, err)
	}

	return c.JSON(toTaskResponse(task))
}

// UpdateStatus changes only the status field.
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	uow := h.newUoW()
	task, errResp := h.loadOwned(c, uow, "update")
	if task == nil {
		return errResp
	}

	var req taskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	task.Status = models.ParseStatus(req.Status)

	if err := uow.Tasks().Update(c.Context(), task); err != nil {
		return serverError(c, err)
	}

	return c.JSON(toTaskResponse(task))
}

// UpdateDueDate changes only the due date.
func (h *TaskHandler) UpdateDueDate(c *fiber.Ctx) error {
	uow := h.newUoW()
	task, errResp := h.loadOwned(c, uow, "update")
	if task == nil {
		return errResp
	}

	var req taskDueDateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	dueDate, err := models.CombineDueDate(req.DueDate, req.DueTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid due date"})
	}
	task.DueDate = dueDate

	if err := uow.Tasks().Update(c.Context(), task); err != nil {
		return serverError(c, err)
	}

	return c.JSON(toTaskResponse(task))
}

// Delete removes the task and returns 204.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	uow := h.newUoW()
	task, errResp := h.loadOwned(c, uow, "delete")
	if task == nil {
		return errResp
	}

	if err := uow.Tasks().Delete(c.Context(), task.ID); err != nil {
		return serverError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// loadOwned fetches the task from the :id param and runs the ownership
// check. On failure it writes the response and returns nil for the task.
func (h *TaskHandler) loadOwned(c *fiber.Ctx, uow repository.UnitOfWork, verb string) (*models.TaskItem, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid task id"})
	}

	task, err := uow.Tasks().GetByID(c.Context(), id)
	if err != nil {
		return nil, serverError(c, err)
	}
	if task == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Task with ID %d not found", id)})
	}

	userID, roles, _ := middleware.Principal(c)
	if !utils.CanAccessResource(roles, task.UserID, userID) {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": fmt.Sprintf("You do not have permission to %s this task", verb),
		})
	}

	return task, nil
}

func validateTaskRequest(req *taskRequest) string {
	if req.Title == "" {
		return "Title is required"
	}
	if len(req.Title) > 200 {
		return "Title must be at most 200 characters"
	}
	if len(req.Description) > 4000 {
		return "Description must be at most 4000 characters"
	}
	if req.DueDate == "" {
		return "Due date is required"
	}
	return ""
}
