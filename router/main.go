package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskify/taskify-api/config"
	"github.com/taskify/taskify-api/handlers"
	"github.com/taskify/taskify-api/middleware"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Tasks         *handlers.TaskHandler
	DailyGoals    *handlers.DailyGoalHandler
	FocusSessions *handlers.FocusSessionHandler
	Internal      *handlers.InternalTaskHandler
	Chat          *handlers.ChatHandler
}

func SetupRoutes(app *fiber.App, cfg *config.Config, h Handlers) {
	app.Get("/health", handlers.HandleHealthCheck)

	jwt := middleware.JWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	auth := app.Group("/api/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", jwt, h.Auth.Logout)
	auth.Get("/me", jwt, h.Auth.Me)
	auth.Put("/profile", jwt, h.Auth.UpdateProfile)
	auth.Post("/change-password", jwt, h.Auth.ChangePassword)
	auth.Post("/avatar", jwt, h.Auth.UploadAvatar)

	tasks := app.Group("/api/taskitem", jwt)
	tasks.Get("/", h.Tasks.GetAll)
	tasks.Post("/", h.Tasks.Create)
	tasks.Get("/:id", h.Tasks.GetByID)
	tasks.Put("/:id", h.Tasks.Update)
	tasks.Patch("/:id/status", h.Tasks.UpdateStatus)
	tasks.Patch("/:id/duedate", h.Tasks.UpdateDueDate)
	tasks.Delete("/:id", h.Tasks.Delete)

	goals := app.Group("/api/dailygoal", jwt)
	goals.Get("/", h.DailyGoals.GetAll)
	goals.Get("/today", h.DailyGoals.GetToday)
	goals.Post("/", h.DailyGoals.Create)
	// register before /:id so "clear-completed" is not parsed as an id
	goals.Delete("/clear-completed", h.DailyGoals.ClearCompleted)
	goals.Get("/:id", h.DailyGoals.GetByID)
	goals.Put("/:id", h.DailyGoals.Update)
	goals.Put("/:id/toggle", h.DailyGoals.Toggle)
	goals.Patch("/:id", h.DailyGoals.Update)
	goals.Delete("/:id", h.DailyGoals.Delete)

	sessions := app.Group("/api/focussession", jwt)
	sessions.Get("/", h.FocusSessions.GetAll)
	sessions.Get("/today", h.FocusSessions.GetToday)
	sessions.Get("/stats", h.FocusSessions.GetStats)
	sessions.Post("/", h.FocusSessions.Start)
	sessions.Post("/start", h.FocusSessions.Start)
	sessions.Get("/:id", h.FocusSessions.GetByID)
	sessions.Put("/:id/end", h.FocusSessions.End)
	sessions.Delete("/:id", h.FocusSessions.Delete)

	app.Post("/api/chat", jwt, h.Chat.Post)

	internal := app.Group("/api/internal/tasks", middleware.AgentToken(cfg.AgentAPIToken))
	internal.Get("/:userId", h.Internal.GetTasksByUser)
	internal.Post("/:userId", h.Internal.CreateTaskForUser)
}
