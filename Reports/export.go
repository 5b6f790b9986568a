package Reports

import (
	"Fleeto/Models"
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func reportCompanyID(c *fiber.Ctx) uint {
	if user, ok := c.Locals("user").(Models.User); ok {
		return user.CompanyID
	}
	return 0
}

// invoicesToExcel renders invoices into a spreadsheet buffer.
func invoicesToExcel(invoices []Models.Invoice) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Invoices"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Invoice Number", "Contract", "Issue Date", "Due Date", "Status",
		"Subtotal", "Tax", "Total", "Total Paid", "Remaining Balance",
		"Payments Count",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, invoice := range invoices {
		row := rowIndex + 2

		contractName := ""
		if invoice.Contract.ID != 0 {
			contractName = invoice.Contract.ClientName
		}

		values := []interface{}{
			invoice.InvoiceNumber,
			contractName,
			invoice.IssueDate.Format("2006-01-02"),
			invoice.DueDate.Format("2006-01-02"),
			invoice.Status,
			invoice.Subtotal,
			invoice.Tax,
			invoice.Total,
			invoice.TotalPaid,
			invoice.RemainingBalance,
			len(invoice.Payments),
		}

		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := 0; i < len(headers); i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 18)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}

	return &buf, nil
}

// ExportInvoices streams the company's invoices as an Excel download.
// Optional filters: status, from, to (issue date, YYYY-MM-DD).
func ExportInvoices(c *fiber.Ctx) error {
	companyID := reportCompanyID(c)

	query := Models.DB.Model(&Models.Invoice{}).Where("company_id = ?", companyID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if date, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("issue_date >= ?", date)
		}
	}
	if to := c.Query("to"); to != "" {
		if date, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("issue_date <= ?", date)
		}
	}

	var invoices []Models.Invoice
	if err := query.Preload("Contract").Preload("Payments").Order("issue_date").Find(&invoices).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch invoices",
		})
	}

	if len(invoices) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No invoices match the selected filters",
		})
	}

	excelBuffer, err := invoicesToExcel(invoices)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to convert to Excel: %v", err),
		})
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("invoices_export_%s.xlsx", timestamp)

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Set("Content-Length", fmt.Sprintf("%d", excelBuffer.Len()))

	return c.Send(excelBuffer.Bytes())
}
