package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// serverError logs the underlying error and returns a generic 500 body.
// Details never reach the client.
func serverError(c *fiber.Ctx, err error) error {
	log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
}

// HandleHealthCheck reports liveness.
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
