package CronJobs

import (
	"github.com/gofiber/fiber/v2"
)

// activeScheduler is the scheduler started at boot, exposed to the
// on-demand trigger below.
var activeScheduler *ReminderScheduler

// TriggerReminderSweep runs the full overdue sweep on demand, ahead of the
// scheduled run. Unlike the Slack digest trigger this also dispatches the
// FCM pushes and the email digest.
// POST /api/reminders/sweep
func TriggerReminderSweep(c *fiber.Ctx) error {
	if activeScheduler == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Reminder scheduler is not running",
		})
	}
	activeScheduler.RunManualSweep()
	return c.JSON(fiber.Map{
		"message": "Reminder sweep completed",
	})
}
