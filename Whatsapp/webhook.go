package Whatsapp

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// IncomingMessage is the payload the gateway posts for each received
// chat message.
type IncomingMessage struct {
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}

// ReceiveMessage is the webhook the gateway calls. The reply goes back
// out of band so the gateway never waits on database work.
func ReceiveMessage(c *fiber.Ctx) error {
	var input IncomingMessage
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	if input.SenderID == "" || input.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "sender_id and message are required",
		})
	}

	reply := HandleMessage(input.SenderID, input.Message)

	go func(phone, message string) {
		if err := SendMessage(phone, message); err != nil {
			log.Println("Error sending WhatsApp reply:", err)
		}
	}(input.SenderID, reply)

	return c.JSON(fiber.Map{
		"message": "Message processed",
	})
}
