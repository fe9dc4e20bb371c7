package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskify/taskify-api/middleware"
	"github.com/taskify/taskify-api/services"
)

// ChatHandler relays user messages to the conversational agent. The caller's
// user id is the conversation sender; the service absorbs upstream failures.
type ChatHandler struct {
	chat services.ChatService
}

// NewChatHandler wires the handler.
func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatMessage struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Messages []chatMessage `json:"messages"`
}

// Post forwards the message and returns the agent's replies.
func (h *ChatHandler) Post(c *fiber.Ctx) error {
	userID, _, _ := middleware.Principal(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "User not found"})
	}

	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	texts := h.chat.SendMessage(userID, req.Message)

	messages := make([]chatMessage, 0, len(texts))
	for _, t := range texts {
		messages = append(messages, chatMessage{Text: t})
	}

	return c.JSON(chatResponse{Messages: messages})
}
