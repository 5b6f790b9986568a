package Controllers

import (
	"strconv"
	"time"

	"Fleeto/Ledger"
	"Fleeto/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ledgerError maps ledger error kinds onto HTTP statuses. Validation and
// overpayment are 400, a missing payment is 404; anything else is a 500.
func ledgerError(c *fiber.Ctx, err error) error {
	le, ok := Ledger.AsLedgerError(err)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Ledger error",
			"message": err.Error(),
		})
	}

	status := fiber.StatusBadRequest
	if le.Kind == Ledger.KindNotFound {
		status = fiber.StatusNotFound
	}

	body := fiber.Map{
		"kind":    le.Kind,
		"message": le.Message,
	}
	if le.Kind == Ledger.KindExceedsBalance {
		body["remaining_balance"] = le.Remaining
	}
	return c.Status(status).JSON(body)
}

// loadInvoice fetches an invoice with its payments, scoped to the company.
func loadInvoice(c *fiber.Ctx, id uint) (*Models.Invoice, error) {
	var invoice Models.Invoice
	err := Models.DB.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("payment_date ASC, id ASC")
	}).Where("company_id = ?", requestCompanyID(c)).First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CreateInvoice creates a new invoice in draft with computed totals
// POST /api/invoices
func CreateInvoice(c *fiber.Ctx) error {
	var req Models.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	companyID := requestCompanyID(c)

	// Contract is a reference, not owned, but it must exist in this tenant
	var contract Models.Contract
	if err := Models.DB.Where("company_id = ?", companyID).First(&contract, req.ContractID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Contract not found",
				"message": "The specified contract does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	invoice := Models.Invoice{
		CompanyID:     companyID,
		ContractID:    req.ContractID,
		InvoiceNumber: req.InvoiceNumber,
		IssueDate:     parseDateOr(req.IssueDate, time.Now()),
		DueDate:       parseDateOr(req.DueDate, time.Time{}),
		Items:         req.Items,
		IncludeVat:    req.IncludeVat,
		Status:        Models.StatusDraft,
		Notes:         req.Notes,
	}
	invoice.Subtotal, invoice.Tax, invoice.Total = Ledger.ComputeTotals(req.Items, req.IncludeVat)
	invoice.RemainingBalance = invoice.Total

	if err := invoice.MarshalItems(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid items",
			"message": err.Error(),
		})
	}

	if err := Models.DB.Create(&invoice).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create invoice",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Invoice created successfully",
		"data":    invoice,
	})
}

// GetInvoice retrieves an invoice by ID
// GET /api/invoices/:id
func GetInvoice(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	invoice, err := loadInvoice(c, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Invoice retrieved successfully",
		"data":    invoice,
	})
}

// GetAllInvoices retrieves invoices with pagination and optional status filter
// GET /api/invoices?page=1&limit=10&status=unpaid
func GetAllInvoices(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := Models.DB.Model(&Models.Invoice{}).Where("company_id = ?", requestCompanyID(c))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var invoices []Models.Invoice
	err := query.Preload("Payments").Order("issue_date DESC").
		Offset(offset).Limit(limit).Find(&invoices).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Invoices retrieved successfully",
		"data":    invoices,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetInvoicesByContractID retrieves all invoices referencing a contract
// GET /api/contracts/:contractId/invoices
func GetInvoicesByContractID(c *fiber.Ctx) error {
	contractID, err := strconv.ParseUint(c.Params("contractId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid Contract ID",
			"message": "Contract ID must be a valid number",
		})
	}

	var contract Models.Contract
	if err := Models.DB.Where("company_id = ?", requestCompanyID(c)).First(&contract, uint(contractID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Contract not found",
				"message": "The specified contract does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	var invoices []Models.Invoice
	err = Models.DB.Where("contract_id = ? AND company_id = ?", uint(contractID), requestCompanyID(c)).
		Preload("Payments").Order("issue_date DESC").Find(&invoices).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Invoices retrieved successfully",
		"data":    invoices,
		"count":   len(invoices),
	})
}

// UpdateInvoice applies commercial edits and administrative status overrides
// PUT /api/invoices/:id
func UpdateInvoice(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var req Models.UpdateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}

	if req.Status != "" &&
		req.Status != Models.StatusSent &&
		req.Status != Models.StatusCancelled &&
		req.Status != Models.StatusDraft {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid status",
			"message": "Only sent, cancelled and draft can be set directly; payment statuses are derived",
		})
	}

	invoice, err := loadInvoice(c, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	Ledger.UpdateCommercials(invoice, req.Items, req.IncludeVat)

	if req.DueDate != "" {
		invoice.DueDate = parseDateOr(req.DueDate, invoice.DueDate)
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.Status != "" {
		invoice.Status = req.Status
	}

	if err := invoice.MarshalItems(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid items",
			"message": err.Error(),
		})
	}

	if err := Models.DB.Omit(clause.Associations).Save(invoice).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update invoice",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Invoice updated successfully",
		"data":    invoice,
	})
}

// DeleteInvoice deletes an invoice; its payments go with it
// DELETE /api/invoices/:id
func DeleteInvoice(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	invoice, err := loadInvoice(c, uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	tx := Models.DB.Begin()
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&Models.InvoicePayment{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete invoice payments",
			"message": err.Error(),
		})
	}
	if err := tx.Delete(invoice).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete invoice",
			"message": err.Error(),
		})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to commit transaction",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Invoice deleted successfully",
	})
}

func parseDateOr(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return fallback
}

// InvoicePreviewPage renders the server-side invoice preview
// GET /invoices/:id/preview
func InvoicePreviewPage(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid invoice ID")
	}

	invoice, err := loadInvoice(c, uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Invoice not found")
	}

	var contract Models.Contract
	Models.DB.First(&contract, invoice.ContractID)

	return c.Render("invoice", fiber.Map{
		"Invoice":  invoice,
		"Contract": contract,
	})
}
