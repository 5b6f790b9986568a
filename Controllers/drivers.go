package Controllers

import (
	"strconv"
	"time"

	"Fleeto/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetDrivers retrieves the company's drivers
// GET /api/drivers
func GetDrivers(c *fiber.Ctx) error {
	var drivers []Models.Driver
	query := Models.DB.Where("company_id = ?", requestCompanyID(c))
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&drivers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Drivers retrieved successfully",
		"data":    drivers,
		"count":   len(drivers),
	})
}

// GetDriver retrieves a driver by ID
// GET /api/drivers/:id
func GetDriver(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var driver Models.Driver
	if err := Models.DB.Where("company_id = ?", requestCompanyID(c)).First(&driver, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Driver not found",
				"message": "The specified driver does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Driver retrieved successfully",
		"data":    driver,
	})
}

// RegisterDriver creates a new driver
// POST /api/drivers
func RegisterDriver(c *fiber.Ctx) error {
	var req Models.DriverRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	driver := Models.Driver{
		CompanyID:             requestCompanyID(c),
		Name:                  req.Name,
		Phone:                 req.Phone,
		LicenseNumber:         req.LicenseNumber,
		LicenseExpirationDate: parseDateOr(req.LicenseExpirationDate, time.Time{}),
		BaseSalary:            req.BaseSalary,
		IsActive:              true,
	}
	if err := Models.DB.Create(&driver).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to register driver",
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Driver registered successfully",
		"data":    driver,
	})
}

// UpdateDriver updates an existing driver
// PUT /api/drivers/:id
func UpdateDriver(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var driver Models.Driver
	if err := Models.DB.Where("company_id = ?", requestCompanyID(c)).First(&driver, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Driver not found",
			"message": "The specified driver does not exist",
		})
	}

	var req Models.DriverRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.LicenseNumber != "" {
		updates["license_number"] = req.LicenseNumber
	}
	if req.LicenseExpirationDate != "" {
		updates["license_expiration_date"] = parseDateOr(req.LicenseExpirationDate, driver.LicenseExpirationDate)
	}
	if req.BaseSalary != 0 {
		updates["base_salary"] = req.BaseSalary
	}

	if len(updates) > 0 {
		Models.DB.Model(&driver).Updates(updates)
		Models.DB.First(&driver, uint(id))
	}
	return c.JSON(fiber.Map{
		"message": "Driver updated successfully",
		"data":    driver,
	})
}

// DeleteDriver deactivates a driver instead of removing history
// DELETE /api/drivers/:id
func DeleteDriver(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var driver Models.Driver
	if err := Models.DB.Where("company_id = ?", requestCompanyID(c)).First(&driver, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Driver not found",
			"message": "The specified driver does not exist",
		})
	}

	driver.IsActive = false
	if err := Models.DB.Save(&driver).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to deactivate driver",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Driver deactivated successfully",
	})
}
