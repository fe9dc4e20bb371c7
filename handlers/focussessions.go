package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskify/taskify-api/middleware"
	"github.com/taskify/taskify-api/models"
	"github.com/taskify/taskify-api/repository"
)

// FocusSessionHandler serves the focus timer sessions. Owner-scoped with no
// admin override, like daily goals. Each request gets its own unit of work
// from the factory.
type FocusSessionHandler struct {
	newUoW repository.UnitOfWorkFactory
}

// NewFocusSessionHandler wires the handler.
func NewFocusSessionHandler(newUoW repository.UnitOfWorkFactory) *FocusSessionHandler {
	return &FocusSessionHandler{newUoW: newUoW}
}

type startSessionRequest struct {
	DurationMinutes int `json:"durationMinutes"`
}

type endSessionRequest struct {
	IsCompleted bool `json:"isCompleted"`
	BreaksTaken int  `json:"breaksTaken"`
}

type focusStatsResponse struct {
	TotalSessionsToday     int `json:"totalSessionsToday"`
	CompletedSessionsToday int `json:"completedSessionsToday"`
	TotalMinutesToday      int `json:"totalMinutesToday"`
	TotalBreaksToday       int `json:"totalBreaksToday"`
	TotalSessionsThisWeek  int `json:"totalSessionsThisWeek"`
	TotalMinutesThisWeek   int `json:"totalMinutesThisWeek"`
}

// GetAll lists the caller's sessions, newest first.
func (h *FocusSessionHandler) GetAll(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)

	sessions, err := h.newUoW().FocusSessions().GetByUser(c.Context(), userID)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(sessions)
}

// GetToday lists sessions started within the current UTC day.
func (h *FocusSessionHandler) GetToday(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)

	start, end := models.DayWindow(time.Now())
	sessions, err := h.newUoW().FocusSessions().GetByUserAndRange(c.Context(), userID, start, end)
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(sessions)
}

// GetStats aggregates today's and this week's sessions. Weeks start on
// Sunday, UTC.
func (h *FocusSessionHandler) GetStats(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)
	now := time.Now()
	uow := h.newUoW()

	dayStart, dayEnd := models.DayWindow(now)
	today, err := uow.FocusSessions().GetByUserAndRange(c.Context(), userID, dayStart, dayEnd)
	if err != nil {
		return serverError(c, err)
	}

	weekStart, weekEnd := models.WeekWindow(now)
	week, err := uow.FocusSessions().GetByUserAndRange(c.Context(), userID, weekStart, weekEnd)
	if err != nil {
		return serverError(c, err)
	}

	stats := focusStatsResponse{
		TotalSessionsToday:    len(today),
		TotalSessionsThisWeek: len(week),
	}
	for _, s := range today {
		if s.IsCompleted {
			stats.CompletedSessionsToday++
		}
		stats.TotalMinutesToday += s.DurationMinutes
		stats.TotalBreaksToday += s.BreaksTaken
	}
	for _, s := range week {
		stats.TotalMinutesThisWeek += s.DurationMinutes
	}

	return c.JSON(stats)
}

// Start creates a session with the server clock as the start time.
func (h *FocusSessionHandler) Start(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)

	var req startSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if req.DurationMinutes < models.MinFocusDuration || req.DurationMinutes > models.MaxFocusDuration {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Duration must be between %d and %d minutes", models.MinFocusDuration, models.MaxFocusDuration),
		})
	}

	session := &models.FocusSession{
		UserID:          userID,
		DurationMinutes: req.DurationMinutes,
		StartedAt:       time.Now().UTC(),
		IsCompleted:     false,
		BreaksTaken:     0,
	}

	if err := h.newUoW().FocusSessions().Create(c.Context(), session); err != nil {
		return serverError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// GetByID returns one session.
func (h *FocusSessionHandler) GetByID(c *fiber.Ctx) error {
	session, errResp := h.loadOwned(c, h.newUoW(), "access")
	if session == nil {
		return errResp
	}
	return c.JSON(session)
}

// End stamps the end time and applies the client-reported outcome. Calling
// End again overwrites the previous end; the session is not sealed.
func (h *FocusSessionHandler) End(c *fiber.Ctx) error {
	uow := h.newUoW()
	session, errResp := h.loadOwned(c, uow, "modify")
	if session == nil {
		return errResp
	}

	var req endSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	if req.BreaksTaken < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Breaks taken cannot be negative"})
	}

	now := time.Now().UTC()
	session.EndedAt = &now
	session.IsCompleted = req.IsCompleted
	session.BreaksTaken = req.BreaksTaken

	if err := uow.FocusSessions().Update(c.Context(), session); err != nil {
		return serverError(c, err)
	}

	return c.JSON(session)
}

// Delete removes one session and returns 204.
func (h *FocusSessionHandler) Delete(c *fiber.Ctx) error {
	uow := h.newUoW()
	session, errResp := h.loadOwned(c, uow, "delete")
	if session == nil {
		return errResp
	}

	if err := uow.FocusSessions().Delete(c.Context(), session.ID); err != nil {
		return serverError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FocusSessionHandler) loadOwned(c *fiber.Ctx, uow repository.UnitOfWork, verb string) (*models.FocusSession, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid session id"})
	}

	session, err := uow.FocusSessions().GetByID(c.Context(), id)
	if err != nil {
		return nil, serverError(c, err)
	}
	if session == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("Focus session with ID %d not found", id)})
	}

	userID, _, _ := middleware.Principal(c)
	if session.UserID != userID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": fmt.Sprintf("You do not have permission to %s this session", verb),
		})
	}

	return session, nil
}
