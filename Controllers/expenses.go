package Controllers

import (
	"strconv"
	"time"

	"Fleeto/Models"

	"github.com/gofiber/fiber/v2"
)

// RegisterExpense records an expense entered through the API
// POST /api/expenses
func RegisterExpense(c *fiber.Ctx) error {
	var req Models.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	expense := Models.Expense{
		CompanyID: requestCompanyID(c),
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
		Category:  req.Category,
		Amount:    req.Amount,
		Date:      parseDateOr(req.Date, time.Now()),
		Notes:     req.Notes,
		Source:    Models.ExpenseSourceAPI,
	}
	if err := Models.DB.Create(&expense).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to register expense",
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Expense registered successfully",
		"data":    expense,
	})
}

// GetExpenses lists expenses with optional driver/category/date filters
// GET /api/expenses?driver_id=&category=&from=&to=
func GetExpenses(c *fiber.Ctx) error {
	query := Models.DB.Where("company_id = ?", requestCompanyID(c))

	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", parseDateOr(from, time.Time{}))
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", parseDateOr(to, time.Now()))
	}

	var expenses []Models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	return c.JSON(fiber.Map{
		"message": "Expenses retrieved successfully",
		"data":    expenses,
		"count":   len(expenses),
		"total":   total,
	})
}

// DeleteExpense removes an expense
// DELETE /api/expenses/:id
func DeleteExpense(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var expense Models.Expense
	if err := Models.DB.Where("company_id = ?", requestCompanyID(c)).First(&expense, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Expense not found",
			"message": "The specified expense does not exist",
		})
	}

	if err := Models.DB.Delete(&expense).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete expense",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Expense deleted successfully",
	})
}

// ExpenseStatsResponse aggregates expenses over a date range.
type ExpenseStatsResponse struct {
	TotalCount    int     `json:"total_count"`
	TotalAmount   float64 `json:"total_amount"`
	AverageAmount float64 `json:"average_amount"`
	MinAmount     float64 `json:"min_amount"`
	MaxAmount     float64 `json:"max_amount"`

	CategoryCounts  map[string]int     `json:"category_counts"`
	CategoryAmounts map[string]float64 `json:"category_amounts"`
	SourceCounts    map[string]int     `json:"source_counts"`
}

func calculateExpenseStats(expenses []Models.Expense) ExpenseStatsResponse {
	stats := ExpenseStatsResponse{
		CategoryCounts:  make(map[string]int),
		CategoryAmounts: make(map[string]float64),
		SourceCounts:    make(map[string]int),
	}

	if len(expenses) == 0 {
		return stats
	}

	stats.MinAmount = expenses[0].Amount
	stats.MaxAmount = expenses[0].Amount

	for _, expense := range expenses {
		stats.TotalCount++
		stats.TotalAmount += expense.Amount

		if expense.Amount < stats.MinAmount {
			stats.MinAmount = expense.Amount
		}
		if expense.Amount > stats.MaxAmount {
			stats.MaxAmount = expense.Amount
		}

		stats.CategoryCounts[expense.Category]++
		stats.CategoryAmounts[expense.Category] += expense.Amount
		stats.SourceCounts[expense.Source]++
	}

	stats.AverageAmount = stats.TotalAmount / float64(stats.TotalCount)
	return stats
}

// GetExpenseStats summarizes expenses by category and source
// GET /api/expenses/stats?from=&to=
func GetExpenseStats(c *fiber.Ctx) error {
	query := Models.DB.Where("company_id = ?", requestCompanyID(c))

	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", parseDateOr(from, time.Time{}))
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", parseDateOr(to, time.Now()))
	}

	var expenses []Models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Expense statistics retrieved successfully",
		"stats":   calculateExpenseStats(expenses),
	})
}
