package FiberConfig

import (
	"Fleeto/Apis"
	"Fleeto/Controllers"
	"Fleeto/CronJobs"
	"Fleeto/Models"
	"Fleeto/Reports"
	"Fleeto/Slack"
	"Fleeto/Whatsapp"
	"Fleeto/middleware"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	contractController := Controllers.NewContractController(db)
	analyticsController := Controllers.NewFinanceAnalyticsController(db)

	// API group
	api := app.Group("/api")

	// Auth routes (no permission gate; token issuance lives here)
	api.Post("/Login", Controllers.Login)
	api.Get("/validate-token", Controllers.ValidateToken)
	api.Use("/User", Controllers.User)
	api.Use("/Logout", Controllers.Logout)
	api.Post("/RegisterUser", middleware.Verify(Models.PermissionAdmin), Controllers.RegisterUser)
	api.Post("/UpdateToken", middleware.Verify(Models.PermissionViewer), Models.UpdateToken)

	// Invoice routes. Export registers before :id so the path wins.
	invoices := api.Group("/invoices", middleware.Verify(Models.PermissionAccountant))
	invoices.Get("/export", Reports.ExportInvoices)
	invoices.Get("/", Controllers.GetAllInvoices)
	invoices.Post("/", Controllers.CreateInvoice)
	invoices.Get("/:id", Controllers.GetInvoice)
	invoices.Put("/:id", Controllers.UpdateInvoice)
	invoices.Delete("/:id", Controllers.DeleteInvoice)

	// Payment routes under invoices
	invoices.Post("/:id/payments", Controllers.AddInvoicePayment)
	invoices.Put("/:id/payments/:paymentId", Controllers.UpdateInvoicePayment)
	invoices.Delete("/:id/payments/:paymentId", Controllers.DeleteInvoicePayment)

	// Contract routes
	contracts := api.Group("/contracts", middleware.Verify(Models.PermissionAccountant))
	contracts.Get("/", contractController.GetContracts)
	contracts.Post("/", contractController.CreateContract)
	contracts.Get("/:id", contractController.GetContract)
	contracts.Put("/:id", contractController.UpdateContract)
	contracts.Delete("/:id", contractController.DeleteContract)
	contracts.Get("/:id/balance", contractController.GetContractBalance)
	contracts.Get("/:contractId/invoices", Controllers.GetInvoicesByContractID)

	// Analytics routes
	analytics := api.Group("/analytics", middleware.Verify(Models.PermissionAccountant))
	analytics.Get("/summary", analyticsController.Summary)
	analytics.Get("/monthly", analyticsController.MonthlyRevenue)
	analytics.Get("/top-contracts", analyticsController.TopContracts)
	analytics.Get("/recent-activity", analyticsController.RecentActivity)

	// Vehicle routes
	vehicles := api.Group("/vehicles", middleware.Verify(Models.PermissionViewer))
	vehicles.Get("/", Controllers.GetAllVehicles)
	vehicles.Post("/", Controllers.CreateVehicle)
	vehicles.Post("/import", Reports.ImportVehicles)
	vehicles.Get("/:id", Controllers.GetVehicle)
	vehicles.Put("/:id", Controllers.UpdateVehicle)
	vehicles.Delete("/:id", Controllers.DeleteVehicle)

	// Driver routes
	drivers := api.Group("/drivers", middleware.Verify(Models.PermissionViewer))
	drivers.Get("/", Controllers.GetDrivers)
	drivers.Post("/", Controllers.RegisterDriver)
	drivers.Get("/:id", Controllers.GetDriver)
	drivers.Put("/:id", Controllers.UpdateDriver)
	drivers.Delete("/:id", Controllers.DeleteDriver)

	// Expense routes
	expenses := api.Group("/expenses", middleware.Verify(Models.PermissionViewer))
	expenses.Get("/stats", Controllers.GetExpenseStats)
	expenses.Get("/", Controllers.GetExpenses)
	expenses.Post("/", Controllers.RegisterExpense)
	expenses.Delete("/:id", Controllers.DeleteExpense)

	// Payroll routes
	payroll := api.Group("/payroll", middleware.Verify(Models.PermissionAccountant))
	payroll.Get("/", Apis.GetPayrollEntries)
	payroll.Post("/preview", Apis.GetPayrollPreview)
	payroll.Post("/register", Apis.RegisterPayroll)
	payroll.Post("/status", Apis.UpdatePayrollStatus)

	// WhatsApp gateway. The webhook stays open; the gateway has no user.
	app.Post("/api/whatsapp/webhook", Whatsapp.ReceiveMessage)
	api.Get("/whatsapp/login", middleware.Verify(Models.PermissionAdmin), Whatsapp.CheckWPLogin)
	api.Get("/whatsapp/qr", middleware.Verify(Models.PermissionAdmin), Whatsapp.GetQRCode)

	// Slack digest
	api.Post("/slack/digest", middleware.Verify(Models.PermissionAccountant), Slack.TriggerOverdueDigest)

	// Full reminder sweep (FCM + Slack + email), outside the schedule
	api.Post("/reminders/sweep", middleware.Verify(Models.PermissionAdmin), CronJobs.TriggerReminderSweep)

	// Logs API routes
	api.Get("/logs", middleware.Verify(Models.PermissionAdmin), Controllers.GetLogs)
	api.Get("/logs/stats", middleware.Verify(Models.PermissionAdmin), Controllers.GetLogStats)
	api.Get("/logs/path/:path", middleware.Verify(Models.PermissionAdmin), Controllers.GetLogsByPath)

	// Server-rendered invoice preview
	app.Get("/invoices/:id/preview", middleware.Verify(Models.PermissionAccountant), Controllers.InvoicePreviewPage)
}

func FiberConfig(config ServerConfig) *fiber.App {
	fmt.Println("Server Up...")
	engine := html.New(config.TemplatesDir, ".html")
	// Html Template engine
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, Models.DB)

	return app
}
