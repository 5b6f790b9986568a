package Controllers

import (
	"strconv"
	"time"

	"Fleeto/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ContractController handles contract-related API endpoints
type ContractController struct {
	DB *gorm.DB
}

// NewContractController creates a new ContractController
func NewContractController(db *gorm.DB) *ContractController {
	return &ContractController{DB: db}
}

func (cc *ContractController) GetContracts(ctx *fiber.Ctx) error {
	var contracts []Models.Contract
	query := cc.DB.Where("company_id = ?", requestCompanyID(ctx))
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if result := query.Order("client_name ASC").Find(&contracts); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve contracts"})
	}
	return ctx.JSON(contracts)
}

func (cc *ContractController) GetContract(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract ID"})
	}

	var contract Models.Contract
	result := cc.DB.Where("company_id = ?", requestCompanyID(ctx)).First(&contract, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	}
	return ctx.JSON(contract)
}

func (cc *ContractController) CreateContract(ctx *fiber.Ctx) error {
	var input Models.ContractRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return validationFailed(ctx, err)
	}

	contract := Models.Contract{
		CompanyID:    requestCompanyID(ctx),
		ClientName:   input.ClientName,
		ContactName:  input.ContactName,
		ContactPhone: input.ContactPhone,
		ContactEmail: input.ContactEmail,
		StartDate:    parseDateOr(input.StartDate, time.Now()),
		EndDate:      parseDateOr(input.EndDate, time.Now().AddDate(1, 0, 0)),
		MonthlyRate:  input.MonthlyRate,
		PerTripRate:  input.PerTripRate,
		VehicleCount: input.VehicleCount,
		Status:       "active",
		Notes:        input.Notes,
	}

	if result := cc.DB.Create(&contract); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create contract"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(contract)
}

func (cc *ContractController) UpdateContract(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract ID"})
	}

	var contract Models.Contract
	if result := cc.DB.Where("company_id = ?", requestCompanyID(ctx)).First(&contract, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	}

	var input Models.ContractRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := make(map[string]interface{})
	if input.ClientName != "" {
		updates["client_name"] = input.ClientName
	}
	if input.ContactName != "" {
		updates["contact_name"] = input.ContactName
	}
	if input.ContactPhone != "" {
		updates["contact_phone"] = input.ContactPhone
	}
	if input.ContactEmail != "" {
		updates["contact_email"] = input.ContactEmail
	}
	if input.StartDate != "" {
		updates["start_date"] = parseDateOr(input.StartDate, contract.StartDate)
	}
	if input.EndDate != "" {
		updates["end_date"] = parseDateOr(input.EndDate, contract.EndDate)
	}
	if input.MonthlyRate != 0 {
		updates["monthly_rate"] = input.MonthlyRate
	}
	if input.PerTripRate != 0 {
		updates["per_trip_rate"] = input.PerTripRate
	}
	if input.VehicleCount != 0 {
		updates["vehicle_count"] = input.VehicleCount
	}
	if input.Notes != "" {
		updates["notes"] = input.Notes
	}

	if len(updates) > 0 {
		cc.DB.Model(&contract).Updates(updates)
		cc.DB.First(&contract, id)
	}
	return ctx.JSON(contract)
}

// DeleteContract soft deletes a contract. Invoices referencing it are kept.
func (cc *ContractController) DeleteContract(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract ID"})
	}

	var contract Models.Contract
	if result := cc.DB.Where("company_id = ?", requestCompanyID(ctx)).First(&contract, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	}

	cc.DB.Delete(&contract)
	return ctx.JSON(fiber.Map{"message": "Contract deleted successfully"})
}

// GetContractBalance reports the outstanding balance across a contract's invoices
func (cc *ContractController) GetContractBalance(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contract ID"})
	}

	var contract Models.Contract
	if result := cc.DB.Where("company_id = ?", requestCompanyID(ctx)).First(&contract, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	}

	type balanceRow struct {
		Invoiced    float64
		Paid        float64
		Outstanding float64
	}
	var row balanceRow
	cc.DB.Model(&Models.Invoice{}).
		Where("contract_id = ? AND status NOT IN ?", contract.ID, []string{Models.StatusDraft, Models.StatusCancelled}).
		Select("COALESCE(SUM(total),0) as invoiced, COALESCE(SUM(total_paid),0) as paid, COALESCE(SUM(remaining_balance),0) as outstanding").
		Scan(&row)

	return ctx.JSON(fiber.Map{
		"contract_id": contract.ID,
		"invoiced":    row.Invoiced,
		"paid":        row.Paid,
		"outstanding": row.Outstanding,
	})
}
