// handlers/chat.go - LLM pass-through for the travel assistant
package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"trailquest/services"
)

type ChatRequest struct {
	Message     string `json:"message"`
	UserContext string `json:"user_context,omitempty"`
}

// Chat forwards a user message to the language model and returns the
// reply verbatim.
func Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Message == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "message required"})
	}

	prompt := req.Message
	if req.UserContext != "" {
		prompt = fmt.Sprintf("User context: %s\n\n%s", req.UserContext, req.Message)
	}

	client := services.GetAIClient()
	reply, err := client.SendMessage(c.Context(), prompt)
	if err != nil {
		log.Printf("chat completion failed: %v", err)
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "Assistant unavailable"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"response":   reply,
		"session_id": client.SessionID(),
	})
}
