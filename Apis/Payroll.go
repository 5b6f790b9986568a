package Apis

import (
	"Fleeto/Models"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// queryInt parses an optional integer query parameter, 0 when absent or
// malformed.
func queryInt(c *fiber.Ctx, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

// payrollCompanyID returns the tenant scope of the authenticated user.
func payrollCompanyID(c *fiber.Ctx) uint {
	if user, ok := c.Locals("user").(Models.User); ok {
		return user.CompanyID
	}
	return 0
}

// PeriodRange converts a YYYY-MM period into its first and last day.
func PeriodRange(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

// ComputeNetPay settles a driver's pay for a period. Advances already
// handed out during the period come off the top alongside deductions.
func ComputeNetPay(baseSalary, allowances, deductions, advances float64) float64 {
	return baseSalary + allowances - deductions - advances
}

// sumAdvances totals the driver's cash advances recorded as expenses
// within the period.
func sumAdvances(companyID, driverID uint, from, to time.Time) (float64, []Models.Expense, error) {
	var advances []Models.Expense
	if err := Models.DB.Model(&Models.Expense{}).Where(
		"company_id = ? AND driver_id = ? AND category = ? AND date >= ? AND date <= ?",
		companyID, driverID, "advance", from, to,
	).Find(&advances).Error; err != nil {
		return 0, nil, err
	}

	total := 0.0
	for _, advance := range advances {
		total += advance.Amount
	}
	return total, advances, nil
}

// GetPayrollPreview returns the computed pay for a driver and period
// without persisting anything.
func GetPayrollPreview(c *fiber.Ctx) error {
	var input Models.PayrollRequest
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	if input.DriverID == 0 || input.Period == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Driver ID and period are required",
		})
	}

	from, to, err := PeriodRange(input.Period)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Period must be in YYYY-MM format",
		})
	}

	companyID := payrollCompanyID(c)

	var driver Models.Driver
	if err := Models.DB.Where("company_id = ?", companyID).First(&driver, input.DriverID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Driver not found",
		})
	}

	totalAdvances, advances, err := sumAdvances(companyID, driver.ID, from, to)
	if err != nil {
		log.Println("Error fetching advances:", err.Error())
		return err
	}

	netPay := ComputeNetPay(driver.BaseSalary, input.Allowances, input.Deductions, totalAdvances)

	return c.JSON(fiber.Map{
		"driver_name":    driver.Name,
		"period":         input.Period,
		"base_salary":    driver.BaseSalary,
		"allowances":     input.Allowances,
		"deductions":     input.Deductions,
		"advances":       totalAdvances,
		"advance_items":  advances,
		"advances_count": len(advances),
		"net_pay":        netPay,
	})
}

// RegisterPayroll computes and persists a payroll entry for a driver
// and period. One entry per driver per period.
func RegisterPayroll(c *fiber.Ctx) error {
	var input Models.PayrollRequest
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	if input.DriverID == 0 || input.Period == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Driver ID and period are required",
		})
	}

	from, to, err := PeriodRange(input.Period)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Period must be in YYYY-MM format",
		})
	}

	companyID := payrollCompanyID(c)

	var driver Models.Driver
	if err := Models.DB.Where("company_id = ?", companyID).First(&driver, input.DriverID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Driver not found",
		})
	}

	var existing int64
	Models.DB.Model(&Models.PayrollEntry{}).Where(
		"company_id = ? AND driver_id = ? AND period = ?",
		companyID, driver.ID, input.Period,
	).Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Payroll entry already exists for this driver and period",
		})
	}

	totalAdvances, advances, err := sumAdvances(companyID, driver.ID, from, to)
	if err != nil {
		log.Println("Error fetching advances:", err.Error())
		return err
	}

	entry := Models.PayrollEntry{
		CompanyID:  companyID,
		DriverID:   driver.ID,
		Period:     input.Period,
		BaseSalary: driver.BaseSalary,
		Allowances: input.Allowances,
		Deductions: input.Deductions,
		Advances:   totalAdvances,
		NetPay:     ComputeNetPay(driver.BaseSalary, input.Allowances, input.Deductions, totalAdvances),
		Status:     "pending",
		Notes:      input.Notes,
	}

	tx := Models.DB.Begin()
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		log.Println("Error creating payroll entry:", err.Error())
		return err
	}
	if err := tx.Commit().Error; err != nil {
		log.Println("Error committing transaction:", err.Error())
		return err
	}

	return c.JSON(fiber.Map{
		"message":        "Payroll Registered Successfully",
		"payroll":        entry,
		"advances_count": len(advances),
	})
}

// GetPayrollEntries fetches payroll entries with optional filtering
// by driver and period.
func GetPayrollEntries(c *fiber.Ctx) error {
	companyID := payrollCompanyID(c)

	query := Models.DB.Model(&Models.PayrollEntry{}).Where("company_id = ?", companyID)

	if driverID := queryInt(c, "driver_id"); driverID > 0 {
		query = query.Where("driver_id = ?", driverID)
	}
	if period := c.Query("period"); period != "" {
		query = query.Where("period = ?", period)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var entries []Models.PayrollEntry
	if err := query.Preload("Driver").Order("period DESC, driver_id").Find(&entries).Error; err != nil {
		log.Println("Error fetching payroll entries:", err.Error())
		return err
	}

	totalNet := 0.0
	totalAdvances := 0.0
	for _, entry := range entries {
		totalNet += entry.NetPay
		totalAdvances += entry.Advances
	}

	return c.JSON(fiber.Map{
		"payroll":     entries,
		"total_count": len(entries),
		"summary": fiber.Map{
			"total_net_pay":  totalNet,
			"total_advances": totalAdvances,
		},
	})
}

// UpdatePayrollStatus moves an entry along pending -> approved -> paid.
func UpdatePayrollStatus(c *fiber.Ctx) error {
	var input struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse request body",
		})
	}

	allowed := map[string]string{
		"approved": "pending",
		"paid":     "approved",
	}
	required, ok := allowed[input.Status]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be approved or paid",
		})
	}

	companyID := payrollCompanyID(c)

	var entry Models.PayrollEntry
	if err := Models.DB.Where("company_id = ?", companyID).First(&entry, input.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Payroll entry not found",
		})
	}

	if entry.Status != required {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Entry is " + entry.Status + ", cannot move to " + input.Status,
		})
	}

	entry.Status = input.Status
	if err := Models.DB.Save(&entry).Error; err != nil {
		log.Println("Error updating payroll entry:", err.Error())
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Payroll Updated Successfully",
		"payroll": entry,
	})
}
