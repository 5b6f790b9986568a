package Reports

import (
	"Fleeto/Models"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gofiber/fiber/v2"
)

// parseVehicleRow maps one spreadsheet row onto a vehicle. Expected
// columns: plate, type, make/model, year, license expiration, odometer.
func parseVehicleRow(row []string, companyID uint) (Models.Vehicle, bool) {
	vehicle := Models.Vehicle{CompanyID: companyID, Status: "active"}

	for columnIndex, data := range row {
		data = strings.TrimSpace(data)
		if columnIndex == 0 {
			vehicle.PlateNumber = strings.ToUpper(data)
		}
		if columnIndex == 1 {
			vehicle.VehicleType = data
		}
		if columnIndex == 2 {
			vehicle.MakeModel = data
		}
		if columnIndex == 3 {
			year, err := strconv.Atoi(data)
			if err == nil {
				vehicle.Year = year
			}
		}
		if columnIndex == 4 {
			date, err := time.Parse("2006-01-02", data)
			if err == nil {
				vehicle.LicenseExpirationDate = date
			}
		}
		if columnIndex == 5 {
			odometer, err := strconv.ParseInt(data, 10, 64)
			if err == nil {
				vehicle.Odometer = odometer
			}
		}
	}

	if vehicle.PlateNumber == "" {
		return vehicle, false
	}
	// Header rows carry the column label instead of a plate.
	if strings.Contains(strings.ToLower(vehicle.PlateNumber), "plate") {
		return vehicle, false
	}
	return vehicle, true
}

// ImportVehicles bulk-loads vehicles from an uploaded spreadsheet.
// Rows whose plate already exists for the company are skipped.
func ImportVehicles(c *fiber.Ctx) error {
	companyID := reportCompanyID(c)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided. Please upload an Excel file.",
		})
	}

	tempPath := fmt.Sprintf("./vehicles_import_%d_%d.xlsx", companyID, time.Now().UnixNano())
	if err := c.SaveFile(file, tempPath); err != nil {
		log.Println("Error saving upload:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store uploaded file",
		})
	}
	defer os.Remove(tempPath)

	f, err := excelize.OpenFile(tempPath)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid Excel file",
		})
	}

	rows := f.GetRows("Sheet1")
	if len(rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No rows found in Sheet1",
		})
	}

	imported := 0
	skipped := 0

	tx := Models.DB.Begin()
	for _, row := range rows {
		vehicle, ok := parseVehicleRow(row, companyID)
		if !ok {
			skipped++
			continue
		}

		var existing int64
		tx.Model(&Models.Vehicle{}).Where(
			"company_id = ? AND plate_number = ?", companyID, vehicle.PlateNumber,
		).Count(&existing)
		if existing > 0 {
			skipped++
			continue
		}

		if err := tx.Create(&vehicle).Error; err != nil {
			tx.Rollback()
			log.Println("Error importing vehicle:", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("Failed importing plate %s", vehicle.PlateNumber),
			})
		}
		imported++
	}

	if err := tx.Commit().Error; err != nil {
		log.Println("Error committing transaction:", err.Error())
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "Vehicles Imported Successfully",
		"imported": imported,
		"skipped":  skipped,
	})
}
