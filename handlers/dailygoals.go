package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskify/taskify-api/middleware"
	"github.com/taskify/taskify-api/models"
	"github.com/taskify/taskify-api/repository"
)

// DailyGoalHandler serves the per-day goal checklist. Goals are strictly
// owner-scoped; there is no admin override here. Each request gets its own
// unit of work from the factory.
type DailyGoalHandler struct {
	newUoW repository.UnitOfWorkFactory
}

// NewDailyGoalHandler wires the handler.
func NewDailyGoalHandler(newUoW repository.UnitOfWorkFactory) *DailyGoalHandler {
	return &DailyGoalHandler{newUoW: newUoW}
}

type createGoalRequest struct {
	Title string `json:"title"`
}

type updateGoalRequest struct {
	Title       string `json:"title"`
	IsCompleted *bool  `json:"isCompleted"`
}

// GetAll lists the caller's goals, newest first.
func (h *DailyGoalHandler) GetAll(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)

	goals, err := h.newUoW().DailyGoals().GetByUser(c.Context(), userID)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(goals)
}

// GetToday lists goals created within the current UTC day.
func (h *DailyGoalHandler) GetToday(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)

	goals, err := h.newUoW().DailyGoals().GetTodayByUser(c.Context(), userID, time.Now())
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(goals)
}

// Create adds a goal for today.
func (h *DailyGoalHandler) Create(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)

	var req createGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Title is required"})
	}
	if len(req.Title) > 500 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Title must be at most 500 characters"})
	}

	goal := &models.DailyGoal{
		UserID:      userID,
		Title:       req.Title,
		IsCompleted: false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.newUoW().DailyGoals().Create(c.Context(), goal); err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

// GetByID returns one goal.
func (h *DailyGoalHandler) GetByID(c *fiber.Ctx) error {
	goal, errResp := h.loadOwned(c, h.newUoW(), "access")
	if goal == nil {
		return errResp
	}
	return c.JSON(goal)
}

// Update applies a partial update: a non-empty title replaces the old one,
// and isCompleted is applied when present.
func (h *DailyGoalHandler) Update(c *fiber.Ctx) error {
	uow := h.newUoW()
	goal, errResp := h.loadOwned(c, uow, "modify")
	if goal == nil {
		return errResp
	}

	var req updateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if req.Title != "" {
		goal.Title = req.Title
	}
	if req.IsCompleted != nil {
		goal.IsCompleted = *req.IsCompleted
	}

	if err := uow.DailyGoals().Update(c.Context(), goal); err != nil {
		return serverError(c, err)
	}

	return c.JSON(goal)
}

// Toggle flips the completion flag.
func (h *DailyGoalHandler) Toggle(c *fiber.Ctx) error {
	uow := h.newUoW()
	goal, errResp := h.loadOwned(c, uow, "modify")
	if goal == nil {
		return errResp
	}

	goal.IsCompleted = !goal.IsCompleted

	if err := uow.DailyGoals().Update(c.Context(), goal); err != nil {
		return serverError(c, err)
	}

	return c.JSON(goal)
}

// Delete removes one goal and returns 204.
func (h *DailyGoalHandler) Delete(c *fiber.Ctx) error {
	uow := h.newUoW()
	goal, errResp := h.loadOwned(c, uow, "delete")
	if goal == nil {
		return errResp
	}

	if err := uow.DailyGoals().Delete(c.Context(), goal.ID); err != nil {
		return serverError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ClearCompleted bulk-deletes today's completed goals.
func (h *DailyGoalHandler) ClearCompleted(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)

	if err := h.newUoW().DailyGoals().DeleteCompletedToday(c.Context(), userID, time.Now()); err != nil {
		return serverError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DailyGoalHandler) loadOwned(c *fiber.Ctx, uow repository.UnitOfWork, verb string) (*models.DailyGoal, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid goal id"})
	}

	goal, err := uow.DailyGoals().GetByID(c.Context(), id)
	if err != nil {
		return nil, serverError(c, err)
	}
	if goal == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Goal with ID %d not found", id)})
	}

	userID, _, _ := middleware.Principal(c)
	if goal.UserID != userID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": fmt.Sprintf("You do not have permission to %s this goal", verb),
		})
	}

	return goal, nil
}
