package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskify/taskify-api/utils"
)

// Locals keys set by the middleware below.
const (
	LocalsUserID = "user_id"
	LocalsEmail  = "email"
	LocalsRoles  = "roles"
	LocalsAdmin  = "is_admin"
)

// AgentTokenHeader carries the shared secret for the internal agent API.
const AgentTokenHeader = "X-Agent-Token"

// JWT returns a middleware that validates the Bearer token, including its
// issuer and audience, and stores the principal in Locals.
func JWT(secret, issuer, audience string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing token"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token format"})
		}

		claims, err := utils.ValidateJWT(tokenString, secret, issuer, audience)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}

		c.Locals(LocalsUserID, claims.UserID())
		c.Locals(LocalsEmail, claims.Email)
		c.Locals(LocalsRoles, claims.Roles)
		c.Locals(LocalsAdmin, claims.IsAdmin())

		return c.Next()
	}
}

// AgentToken returns a middleware gating the internal agent API on a static
// shared secret. It runs before any handler logic and logs rejections.
func AgentToken(expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if expected == "" {
			log.Println("agent API token is not configured")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid API key"})
		}

		provided := c.Get(AgentTokenHeader)
		if provided == "" || provided != expected {
			log.Printf("invalid or missing %s from %s", AgentTokenHeader, c.IP())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid API key"})
		}

		return c.Next()
	}
}

// Principal reads the authenticated identity stashed by JWT.
func Principal(c *fiber.Ctx) (userID string, roles []string, isAdmin bool) {
	userID, _ = c.Locals(LocalsUserID).(string)
	roles, _ = c.Locals(LocalsRoles).([]string)
	isAdmin, _ = c.Locals(LocalsAdmin).(bool)
	return userID, roles, isAdmin
}
