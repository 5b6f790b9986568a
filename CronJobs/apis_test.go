package CronJobs

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestTriggerReminderSweepWithoutScheduler(t *testing.T) {
	activeScheduler = nil

	app := fiber.New()
	app.Post("/api/reminders/sweep", TriggerReminderSweep)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/reminders/sweep", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestStartRegistersActiveScheduler(t *testing.T) {
	s := NewReminderScheduler(0, false)
	assert.NoError(t, s.Start())
	assert.Same(t, s, activeScheduler)

	s.Stop()
	assert.Nil(t, activeScheduler)
}
