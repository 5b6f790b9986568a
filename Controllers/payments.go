package Controllers

import (
	"strconv"

	"Fleeto/Ledger"
	"Fleeto/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The payment handlers run the ledger mutation in memory first, then persist
// the outcome inside a transaction. The transaction makes the payment row and
// the derived fields land together; it does not lock the invoice against a
// concurrent writer that read the same snapshot. The ledger itself stays
// storage-free.

func invoiceFromParams(c *fiber.Ctx) (*Models.Invoice, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, err
	}
	return loadInvoice(c, uint(id))
}

// persistLedgerFields writes the recomputed derived fields back to the row.
func persistLedgerFields(tx *gorm.DB, invoice *Models.Invoice) error {
	return tx.Model(&Models.Invoice{}).Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"total_paid":        invoice.TotalPaid,
			"remaining_balance": invoice.RemainingBalance,
			"status":            invoice.Status,
		}).Error
}

// AddInvoicePayment records a payment against an invoice
// POST /api/invoices/:id/payments
func AddInvoicePayment(c *fiber.Ctx) error {
	invoice, err := invoiceFromParams(c)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var req Models.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}

	if err := Ledger.AddPayment(invoice, req); err != nil {
		return ledgerError(c, err)
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	payment := &invoice.Payments[len(invoice.Payments)-1]
	if err := tx.Create(payment).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to record payment",
			"message": err.Error(),
		})
	}
	if err := persistLedgerFields(tx, invoice); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update invoice",
			"message": err.Error(),
		})
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to commit transaction",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payment recorded successfully",
		"data":    invoice,
	})
}

// UpdateInvoicePayment partially updates an existing payment
// PUT /api/invoices/:id/payments/:paymentId
func UpdateInvoicePayment(c *fiber.Ctx) error {
	invoice, err := invoiceFromParams(c)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	paymentID, err := strconv.ParseUint(c.Params("paymentId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid payment ID",
			"message": "Payment ID must be a valid number",
		})
	}

	var req Models.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}

	if err := Ledger.UpdatePayment(invoice, uint(paymentID), req); err != nil {
		return ledgerError(c, err)
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	for i := range invoice.Payments {
		if invoice.Payments[i].ID == uint(paymentID) {
			if err := tx.Omit(clause.Associations).Save(&invoice.Payments[i]).Error; err != nil {
				tx.Rollback()
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to update payment",
					"message": err.Error(),
				})
			}
			break
		}
	}
	if err := persistLedgerFields(tx, invoice); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update invoice",
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
		"message": "Payment updated successfully",
		"data":    invoice,
	})
}

// DeleteInvoicePayment removes a payment from an invoice
// DELETE /api/invoices/:id/payments/:paymentId
func DeleteInvoicePayment(c *fiber.Ctx) error {
	invoice, err := invoiceFromParams(c)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Invoice not found",
				"message": "The specified invoice does not exist",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	paymentID, err := strconv.ParseUint(c.Params("paymentId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid payment ID",
			"message": "Payment ID must be a valid number",
		})
	}

	if err := Ledger.DeletePayment(invoice, uint(paymentID)); err != nil {
		return ledgerError(c, err)
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	if err := tx.Unscoped().Where("id = ? AND invoice_id = ?", uint(paymentID), invoice.ID).
		Delete(&Models.InvoicePayment{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete payment",
			"message": err.Error(),
		})
	}
	if err := persistLedgerFields(tx, invoice); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update invoice",
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
		"message": "Payment deleted successfully",
		"data":    invoice,
	})
}
