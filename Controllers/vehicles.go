package Controllers

import (
	"strconv"
	"time"

	"Fleeto/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllVehicles retrieves the company's vehicles
// GET /api/vehicles
func GetAllVehicles(c *fiber.Ctx) error {
	var vehicles []Models.Vehicle
	query := Models.DB.Where("company_id = ?", requestCompanyID(c))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("plate_number ASC").Find(&vehicles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Vehicles retrieved successfully",
		"data":    vehicles,
		"count":   len(vehicles),
	})
}

// GetVehicle retrieves a vehicle by ID
// GET /api/vehicles/:id
func GetVehicle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var vehicle Models.Vehicle
	if err := Models.DB.Where("company_id = ?", requestCompanyID(c)).First(&vehicle, uint(id)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Vehicle not found",
				"message": "The specified vehicle does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Vehicle retrieved successfully",
		"data":    vehicle,
	})
}

// CreateVehicle registers a new vehicle
// POST /api/vehicles
func CreateVehicle(c *fiber.Ctx) error {
	var req Models.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	vehicle := Models.Vehicle{
		CompanyID:             requestCompanyID(c),
		PlateNumber:           req.PlateNumber,
		VehicleType:           req.VehicleType,
		MakeModel:             req.MakeModel,
		Year:                  req.Year,
		LicenseExpirationDate: parseDateOr(req.LicenseExpirationDate, time.Time{}),
		Odometer:              req.Odometer,
		Status:                "active",
		DriverID:              req.DriverID,
	}
	if err := Models.DB.Create(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create vehicle",
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Vehicle created successfully",
		"data":    vehicle,
	})
}

// UpdateVehicle updates an existing vehicle
// PUT /api/vehicles/:id
func UpdateVehicle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var vehicle Models.Vehicle
	if err := Models.DB.Where("company_id = ?", requestCompanyID(c)).First(&vehicle, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Vehicle not found",
			"message": "The specified vehicle does not exist",
		})
	}

	var req Models.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}

	updates := make(map[string]interface{})
	if req.PlateNumber != "" {
		updates["plate_number"] = req.PlateNumber
	}
	if req.VehicleType != "" {
		updates["vehicle_type"] = req.VehicleType
	}
	if req.MakeModel != "" {
		updates["make_model"] = req.MakeModel
	}
	if req.Year != 0 {
		updates["year"] = req.Year
	}
	if req.LicenseExpirationDate != "" {
		updates["license_expiration_date"] = parseDateOr(req.LicenseExpirationDate, vehicle.LicenseExpirationDate)
	}
	if req.Odometer != 0 {
		updates["odometer"] = req.Odometer
	}
	if req.DriverID != nil {
		updates["driver_id"] = req.DriverID
	}

	if len(updates) > 0 {
		Models.DB.Model(&vehicle).Updates(updates)
		Models.DB.First(&vehicle, uint(id))
	}
	return c.JSON(fiber.Map{
		"message": "Vehicle updated successfully",
		"data":    vehicle,
	})
}

// DeleteVehicle soft deletes a vehicle
// DELETE /api/vehicles/:id
func DeleteVehicle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var vehicle Models.Vehicle
	if err := Models.DB.Where("company_id = ?", requestCompanyID(c)).First(&vehicle, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Vehicle not found",
			"message": "The specified vehicle does not exist",
		})
	}

	if err := Models.DB.Delete(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete vehicle",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Vehicle deleted successfully",
	})
}
