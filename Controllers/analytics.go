package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"Fleeto/Models"
)

// FinanceAnalyticsController handles finance analytics endpoints
type FinanceAnalyticsController struct {
	DB *gorm.DB
}

// NewFinanceAnalyticsController creates a new FinanceAnalyticsController
func NewFinanceAnalyticsController(db *gorm.DB) *FinanceAnalyticsController {
	return &FinanceAnalyticsController{DB: db}
}

// Summary returns the company's overall invoicing position
func (c *FinanceAnalyticsController) Summary(ctx *fiber.Ctx) error {
	companyID := requestCompanyID(ctx)

	type summary struct {
		InvoiceCount     int64   `json:"invoice_count"`
		OverdueCount     int64   `json:"overdue_count"`
		TotalInvoiced    float64 `json:"total_invoiced"`
		TotalCollected   float64 `json:"total_collected"`
		TotalOutstanding float64 `json:"total_outstanding"`
		TotalExpenses    float64 `json:"total_expenses"`
	}
	var s summary

	c.DB.Model(&Models.Invoice{}).
		Where("company_id = ? AND status NOT IN ?", companyID,
			[]string{Models.StatusDraft, Models.StatusCancelled}).
		Count(&s.InvoiceCount)

	c.DB.Model(&Models.Invoice{}).
		Where("company_id = ? AND status NOT IN ?", companyID,
			[]string{Models.StatusDraft, Models.StatusCancelled}).
		Select("COALESCE(SUM(total), 0)").Scan(&s.TotalInvoiced)

	c.DB.Model(&Models.Invoice{}).
		Where("company_id = ? AND status NOT IN ?", companyID,
			[]string{Models.StatusDraft, Models.StatusCancelled}).
		Select("COALESCE(SUM(total_paid), 0)").Scan(&s.TotalCollected)

	c.DB.Model(&Models.Invoice{}).
		Where("company_id = ? AND status IN ?", companyID,
			[]string{Models.StatusUnpaid, Models.StatusPartial, Models.StatusSent}).
		Select("COALESCE(SUM(remaining_balance), 0)").Scan(&s.TotalOutstanding)

	c.DB.Model(&Models.Invoice{}).
		Where("company_id = ? AND due_date < ? AND status IN ?", companyID, time.Now(),
			[]string{Models.StatusUnpaid, Models.StatusPartial, Models.StatusSent}).
		Count(&s.OverdueCount)

	c.DB.Model(&Models.Expense{}).
		Where("company_id = ?", companyID).
		Select("COALESCE(SUM(amount), 0)").Scan(&s.TotalExpenses)

	return ctx.JSON(s)
}

// MonthlyRevenue returns invoiced vs collected amounts by month for the last
// 12 months. Payments are bucketed by payment date, invoices by issue date.
func (c *FinanceAnalyticsController) MonthlyRevenue(ctx *fiber.Ctx) error {
	type MonthlyData struct {
		Month     string  `json:"month"`
		Invoiced  float64 `json:"invoiced"`
		Collected float64 `json:"collected"`
	}

	companyID := requestCompanyID(ctx)
	endDate := time.Now()
	startDate := endDate.AddDate(-1, 0, 0)

	var invoices []Models.Invoice
	if err := c.DB.Where("company_id = ? AND issue_date BETWEEN ? AND ? AND status NOT IN ?",
		companyID, startDate, endDate,
		[]string{Models.StatusDraft, Models.StatusCancelled}).
		Find(&invoices).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to retrieve invoices"})
	}

	var payments []Models.InvoicePayment
	if err := c.DB.Joins("JOIN invoices ON invoices.id = invoice_payments.invoice_id").
		Where("invoices.company_id = ? AND invoice_payments.payment_date BETWEEN ? AND ?",
			companyID, startDate, endDate).
		Find(&payments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	monthly := make(map[string]*MonthlyData)
	for i := 0; i < 12; i++ {
		date := endDate.AddDate(0, -i, 0)
		monthly[date.Format("2006-01")] = &MonthlyData{Month: date.Format("Jan 2006")}
	}

	for _, inv := range invoices {
		if data, exists := monthly[inv.IssueDate.Format("2006-01")]; exists {
			data.Invoiced += inv.Total
		}
	}
	for _, p := range payments {
		if data, exists := monthly[p.PaymentDate.Format("2006-01")]; exists {
			data.Collected += p.AmountPaid
		}
	}

	var response []MonthlyData
	for i := 11; i >= 0; i-- {
		date := endDate.AddDate(0, -i, 0)
		if data, exists := monthly[date.Format("2006-01")]; exists {
			response = append(response, *data)
		}
	}

	return ctx.JSON(response)
}

// TopContracts returns the contracts with the highest invoiced volume
func (c *FinanceAnalyticsController) TopContracts(ctx *fiber.Ctx) error {
	type ContractSummary struct {
		ID           uint    `json:"id"`
		ClientName   string  `json:"client_name"`
		Invoiced     float64 `json:"invoiced"`
		Collected    float64 `json:"collected"`
		Outstanding  float64 `json:"outstanding"`
		InvoiceCount int     `json:"invoice_count"`
	}

	var results []ContractSummary
	c.DB.Raw(`
		SELECT
			ct.id,
			ct.client_name,
			SUM(i.total) as invoiced,
			SUM(i.total_paid) as collected,
			SUM(i.remaining_balance) as outstanding,
			COUNT(i.id) as invoice_count
		FROM contracts ct
		JOIN invoices i ON ct.id = i.contract_id
		WHERE ct.company_id = ?
		AND ct.deleted_at IS NULL
		AND i.deleted_at IS NULL
		AND i.status NOT IN ('draft', 'cancelled')
		GROUP BY ct.id, ct.client_name
	`, requestCompanyID(ctx)).Scan(&results)

	slices.SortFunc(results, func(a, b ContractSummary) int {
		switch {
		case a.Invoiced > b.Invoiced:
			return -1
		case a.Invoiced < b.Invoiced:
			return 1
		default:
			return 0
		}
	})
	if len(results) > 5 {
		results = results[:5]
	}

	return ctx.JSON(results)
}

// RecentActivity returns the most recent payments
func (c *FinanceAnalyticsController) RecentActivity(ctx *fiber.Ctx) error {
	type RecentPayment struct {
		ID            uint      `json:"id"`
		InvoiceNumber string    `json:"invoice_number"`
		ClientName    string    `json:"client_name"`
		AmountPaid    float64   `json:"amount_paid"`
		PaymentMethod string    `json:"payment_method"`
		PaymentDate   time.Time `json:"payment_date"`
	}

	var results []RecentPayment
	c.DB.Raw(`
		SELECT
			p.id,
			i.invoice_number,
			ct.client_name,
			p.amount_paid,
			p.payment_method,
			p.payment_date
		FROM invoice_payments p
		JOIN invoices i ON p.invoice_id = i.id
		JOIN contracts ct ON i.contract_id = ct.id
		WHERE i.company_id = ?
		AND p.deleted_at IS NULL
		AND i.deleted_at IS NULL
		ORDER BY p.payment_date DESC, p.id DESC
		LIMIT 10
	`, requestCompanyID(ctx)).Scan(&results)

	return ctx.JSON(results)
}
