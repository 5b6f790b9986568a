package Slack

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// TriggerOverdueDigest posts the overdue-invoice board on demand, ahead
// of the scheduled run.
func TriggerOverdueDigest(c *fiber.Ctx) error {
	if err := SendOverdueDigestToSlack(); err != nil {
		log.Println("Error sending overdue digest:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send digest to Slack",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Digest sent to Slack",
	})
}
