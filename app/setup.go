package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/taskify/taskify-api/config"
	"github.com/taskify/taskify-api/database"
	"github.com/taskify/taskify-api/handlers"
	"github.com/taskify/taskify-api/repository"
	"github.com/taskify/taskify-api/router"
	"github.com/taskify/taskify-api/services"
	"github.com/taskify/taskify-api/storage"
)

// SetupAndRunApp wires configuration, storage, and routes, then serves.
func SetupAndRunApp() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := database.StartPostgreSQL(cfg.PostgresURI, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	defer database.ClosePostgreSQL()

	blobs, err := storage.NewLocalStorage(cfg.AvatarDir, cfg.AvatarURLPrefix)
	if err != nil {
		return err
	}

	db := database.GetDB()
	newUoW := repository.UnitOfWorkFactory(func() repository.UnitOfWork {
		return repository.NewPostgresUnitOfWork(db)
	})
	chat := services.NewWebhookChatService(cfg.ChatWebhookURL, cfg.ChatToken, cfg.ChatTimeout)

	app := fiber.New(fiber.Config{
		// above the 5MB avatar cap so oversize uploads reach the
		// handler's own validation instead of a 413
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	app.Static(cfg.AvatarURLPrefix, cfg.AvatarDir)

	router.SetupRoutes(app, cfg, router.Handlers{
		Auth:          handlers.NewAuthHandler(newUoW, cfg, blobs),
		Tasks:         handlers.NewTaskHandler(newUoW),
		DailyGoals:    handlers.NewDailyGoalHandler(newUoW),
		FocusSessions: handlers.NewFocusSessionHandler(newUoW),
		Internal:      handlers.NewInternalTaskHandler(newUoW),
		Chat:          handlers.NewChatHandler(chat),
	})

	config.AddSwaggerRoutes(app)

	return app.Listen(":" + cfg.Port)
}
