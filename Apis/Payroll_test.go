package Apis

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestComputeNetPay(t *testing.T) {
	assert.Equal(t, 5000.0, ComputeNetPay(5000, 0, 0, 0))
	assert.Equal(t, 5300.0, ComputeNetPay(5000, 500, 100, 100))
	assert.Equal(t, -200.0, ComputeNetPay(1000, 0, 200, 1000))
}

func TestPeriodRange(t *testing.T) {
	from, to, err := PeriodRange("2026-02")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, 2026, to.Year())
	assert.Equal(t, time.February, to.Month())
	assert.Equal(t, 28, to.Day())
}

func TestQueryIntFilters(t *testing.T) {
	app := fiber.New()
	var got int
	app.Get("/payroll", func(c *fiber.Ctx) error {
		got = queryInt(c, "driver_id")
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/payroll?driver_id=7", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 7, got)

	_, err = app.Test(httptest.NewRequest("GET", "/payroll?driver_id=abc", nil))
	assert.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = app.Test(httptest.NewRequest("GET", "/payroll", nil))
	assert.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestPeriodRangeRejectsBadInput(t *testing.T) {
	_, _, err := PeriodRange("February 2026")
	assert.Error(t, err)

	_, _, err = PeriodRange("2026-2")
	assert.Error(t, err)
}
